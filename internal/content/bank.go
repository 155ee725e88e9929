// Package content holds the immutable catalogs of drawing words, trivia
// questions, and chase questions, plus the selection policy over them. The
// bank itself is stateless: callers own the per-room exclusion sets and decide
// when to reset them, so independent rooms never starve each other.
package content

import "math/rand"

const (
	chaseEasyCount = 3
	chaseHardCount = 2
)

var difficultyFallback = map[string]string{
	"hard":   "medium",
	"medium": "easy",
}

// NextWord picks a random unused drawing word at the requested difficulty,
// falling back tier by tier to easier pools before giving up. ok is false only
// when every tier down from the requested one is exhausted; the caller should
// then clear its used set and retry.
func NextWord(difficulty string, used map[string]struct{}) (word string, ok bool) {
	for tier := difficulty; tier != ""; tier = difficultyFallback[tier] {
		pool := wordsAt(tier, used)
		if len(pool) > 0 {
			return pool[rand.Intn(len(pool))], true
		}
	}
	return "", false
}

func wordsAt(tier string, used map[string]struct{}) []string {
	var pool []string
	for _, topic := range gameTopics {
		for _, w := range topic[tier] {
			if _, taken := used[w]; !taken {
				pool = append(pool, w)
			}
		}
	}
	return pool
}

// NextQuestion picks a random trivia question whose text is not in used.
// ok is false when the whole catalog is exhausted.
func NextQuestion(used map[string]struct{}) (Question, bool) {
	var pool []Question
	for _, q := range triviaQuestions {
		if _, taken := used[q.Text]; !taken {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return Question{}, false
	}
	return pool[rand.Intn(len(pool))], true
}

// NextChaseQuestions draws a shuffled fixed mix (3 easy + 2 hard) from the
// category. A category with fewer questions than the mix asks for contributes
// what it has. ok is false for an unknown category.
func NextChaseQuestions(category string) ([]ChaseQuestion, bool) {
	all, found := chaseQuestions[category]
	if !found {
		return nil, false
	}
	var easy, hard []ChaseQuestion
	for _, q := range all {
		if q.Difficulty >= 2 {
			hard = append(hard, q)
		} else {
			easy = append(easy, q)
		}
	}
	set := append(sample(easy, chaseEasyCount), sample(hard, chaseHardCount)...)
	rand.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
	return set, true
}

// ChaseCategories lists every category with chase questions.
func ChaseCategories() []string {
	categories := make([]string, 0, len(chaseQuestions))
	for category := range chaseQuestions {
		categories = append(categories, category)
	}
	return categories
}

func sample(pool []ChaseQuestion, n int) []ChaseQuestion {
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]ChaseQuestion, len(pool))
	copy(picked, pool)
	rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}
