package server

import (
	"testing"

	"party-games/internal/config"
)

func startTrivia(t *testing.T, names ...string) *Room {
	t.Helper()
	room := testRoom(t, config.Default(), names...)
	if _, err := room.StartGame("host", gameTrivia, ""); err != nil {
		t.Fatalf("start trivia: %v", err)
	}
	return room
}

// answerRound has every player answer; correct maps session id to whether they
// should get it right. The last submission's outcome is returned.
func answerRound(t *testing.T, room *Room, correct map[string]bool) *AnswerOutcome {
	t.Helper()
	var out *AnswerOutcome
	for _, p := range room.connectedPlayers() {
		answer := room.Trivia.Question.Correct
		if !correct[p.SessionID] {
			answer = "definitely not this"
		}
		var err error
		out, err = room.SubmitAnswer(p.SessionID, answer)
		if err != nil {
			t.Fatalf("answer for %s: %v", p.SessionID, err)
		}
	}
	return out
}

func TestTriviaDuplicateAnswerIgnored(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben", "Cleo")
	if _, err := room.SubmitAnswer("p1", room.Trivia.Question.Correct); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	before := room.Players["p1"].Score
	out, err := room.SubmitAnswer("p1", "another answer")
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if !out.Duplicate {
		t.Fatalf("second answer should be flagged duplicate")
	}
	if room.Players["p1"].Score != before {
		t.Fatalf("duplicate answer changed the score")
	}
}

func TestTriviaWrongAnswerResetsStreak(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben")
	room.Players["p1"].Streak = 3
	out, err := room.SubmitAnswer("p1", "not even close")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Correct {
		t.Fatalf("answer should be wrong")
	}
	if out.Breakdown.Base != 0 || out.Breakdown.TimeBonus != 0 {
		t.Fatalf("wrong answer should not score: %+v", out.Breakdown)
	}
	if room.Players["p1"].Streak != 0 {
		t.Fatalf("streak = %d, want 0", room.Players["p1"].Streak)
	}
	if !room.Players["p1"].RoundWrong {
		t.Fatalf("wrong answer should void the perfect round")
	}
}

func TestTriviaStreakBonusGrowsAcrossRounds(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben")
	everyone := map[string]bool{"p1": true, "p2": true}

	out := answerRound(t, room, everyone)
	if out.Round == nil || out.Round.Next == nil {
		t.Fatalf("round 1 should complete and roll forward")
	}
	if room.Players["p1"].Streak != 1 {
		t.Fatalf("streak after round 1 = %d, want 1", room.Players["p1"].Streak)
	}

	if _, err := room.SubmitAnswer("p1", room.Trivia.Question.Correct); err != nil {
		t.Fatalf("round 2 answer: %v", err)
	}
	answer, ok := room.Trivia.Answers["p1"]
	if !ok {
		t.Fatalf("answer not recorded")
	}
	if !answer.Correct {
		t.Fatalf("answer should be correct")
	}
	// Streak is 2 now, so the bonus is base times 0.2.
	want := int(float64(room.cfg.Points.CorrectTrivia) * 0.2)
	last := room.Players["p1"]
	if last.Streak != 2 {
		t.Fatalf("streak after round 2 = %d, want 2", last.Streak)
	}
	bonus := lastStreakBonus(t, room, "p1")
	if bonus != want {
		t.Fatalf("streak bonus = %d, want %d", bonus, want)
	}
}

// lastStreakBonus recomputes the breakdown for the session's recorded answer
// so the assertion is not sensitive to wall-clock time bonuses.
func lastStreakBonus(t *testing.T, room *Room, sessionID string) int {
	t.Helper()
	answer, ok := room.Trivia.Answers[sessionID]
	if !ok {
		t.Fatalf("no recorded answer for %s", sessionID)
	}
	breakdown := scoreAnswer(scoreInput{
		GameKind:  gameTrivia,
		Correct:   answer.Correct,
		Elapsed:   answer.Elapsed,
		TimeLimit: room.cfg.TimeLimit(gameTrivia, room.connectedCount()).Seconds(),
		Streak:    room.Players[sessionID].Streak,
		Points:    room.cfg.Points,
		MaxSkips:  room.cfg.MaxConsecutiveSkips,
	})
	return breakdown.StreakBonus
}

func TestTriviaGameCompletesAfterAllRounds(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben")
	everyone := map[string]bool{"p1": true, "p2": false}

	var out *AnswerOutcome
	for round := 1; round <= room.TotalRounds; round++ {
		out = answerRound(t, room, everyone)
		if out.Round == nil {
			t.Fatalf("round %d did not complete", round)
		}
	}
	if !out.Round.Finished || out.Round.Final == nil {
		t.Fatalf("game should finish after round %d: %+v", room.TotalRounds, out.Round)
	}
	if room.State != stateFinished {
		t.Fatalf("state = %s, want finished", room.State)
	}
	if out.Round.Final.Winner != "Ada" {
		t.Fatalf("winner = %q, want Ada", out.Round.Final.Winner)
	}
	for _, res := range out.Round.Final.Results {
		if res.Name == "Ada" && !res.Winner {
			t.Fatalf("winner flag missing on Ada's result")
		}
	}
}

func TestTriviaQuestionsDoNotRepeat(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben")
	seen := map[string]bool{room.Trivia.Question.Text: true}
	everyone := map[string]bool{"p1": true, "p2": true}
	for round := 1; round < room.TotalRounds; round++ {
		answerRound(t, room, everyone)
		text := room.Trivia.Question.Text
		if seen[text] {
			t.Fatalf("question repeated within a game: %q", text)
		}
		seen[text] = true
	}
}

func TestTriviaTimeoutPenalizesSilentPlayers(t *testing.T) {
	room := startTrivia(t, "Ada", "Ben")
	room.Players["p2"].Streak = 2
	if _, err := room.SubmitAnswer("p1", room.Trivia.Question.Correct); err != nil {
		t.Fatalf("answer: %v", err)
	}
	round := room.timeoutTrivia()
	if round == nil || round.Reason != "timeout" {
		t.Fatalf("timeout should close the round: %+v", round)
	}
	if p := room.Players["p2"]; p.Streak != 0 || p.Skips != 1 {
		t.Fatalf("silent player should be penalized: streak=%d skips=%d", p.Streak, p.Skips)
	}
}
