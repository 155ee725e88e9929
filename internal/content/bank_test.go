package content

import "testing"

func TestNextWordRespectsUsedSet(t *testing.T) {
	used := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		word, ok := NextWord("easy", used)
		if !ok {
			break
		}
		if _, taken := used[word]; taken {
			t.Fatalf("word repeated before pool exhausted: %s", word)
		}
		used[word] = struct{}{}
	}
	if len(used) == 0 {
		t.Fatal("expected at least one easy word")
	}
}

func TestNextWordFallsBackToEasierTier(t *testing.T) {
	used := map[string]struct{}{}
	for _, topic := range gameTopics {
		for _, w := range topic["hard"] {
			used[w] = struct{}{}
		}
	}
	word, ok := NextWord("hard", used)
	if !ok {
		t.Fatal("expected fallback to medium pool")
	}
	mediums := map[string]struct{}{}
	for _, topic := range gameTopics {
		for _, w := range topic["medium"] {
			mediums[w] = struct{}{}
		}
	}
	if _, found := mediums[word]; !found {
		t.Fatalf("expected a medium word after hard exhausted, got %q", word)
	}
}

func TestNextWordExhaustedReportsNotOK(t *testing.T) {
	used := map[string]struct{}{}
	for _, topic := range gameTopics {
		for _, tier := range topic {
			for _, w := range tier {
				used[w] = struct{}{}
			}
		}
	}
	if _, ok := NextWord("hard", used); ok {
		t.Fatal("expected exhaustion once all tiers are used")
	}
}

func TestNextQuestionSkipsUsed(t *testing.T) {
	used := map[string]struct{}{}
	for range triviaQuestions {
		q, ok := NextQuestion(used)
		if !ok {
			t.Fatalf("exhausted early with %d used", len(used))
		}
		if _, taken := used[q.Text]; taken {
			t.Fatalf("question repeated: %s", q.Text)
		}
		used[q.Text] = struct{}{}
	}
	if _, ok := NextQuestion(used); ok {
		t.Fatal("expected exhaustion after all questions used")
	}
}

func TestNextChaseQuestionsMix(t *testing.T) {
	set, ok := NextChaseQuestions("Science")
	if !ok {
		t.Fatal("expected Science category")
	}
	if len(set) == 0 {
		t.Fatal("expected a non-empty question set")
	}
	easy, hard := 0, 0
	for _, q := range set {
		if q.Difficulty >= 2 {
			hard++
		} else {
			easy++
		}
	}
	// Catalog has 2 easy + 1 hard per category; the mix takes what exists.
	if easy > chaseEasyCount || hard > chaseHardCount {
		t.Fatalf("mix overflow: %d easy, %d hard", easy, hard)
	}
}

func TestNextChaseQuestionsUnknownCategory(t *testing.T) {
	if _, ok := NextChaseQuestions("Cooking"); ok {
		t.Fatal("expected unknown category to report not ok")
	}
}
