package server

import (
	"strings"
	"testing"

	"party-games/internal/config"
)

func startWhispers(t *testing.T, names ...string) *Room {
	t.Helper()
	room := testRoom(t, config.Default(), names...)
	if _, err := room.StartGame("host", gameWhispers, ""); err != nil {
		t.Fatalf("start whispers: %v", err)
	}
	return room
}

func TestSubmitDrawingAdvancesTurn(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben", "Cleo")
	first := room.currentDrawerID()
	out, err := room.SubmitDrawing(first, "data:image/png;base64,aGk=")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.GuessingBegun {
		t.Fatalf("guessing began after the first of three drawings")
	}
	if out.NextDrawerID == first || out.NextDrawerID == "" {
		t.Fatalf("turn did not advance: next = %q", out.NextDrawerID)
	}
	if out.PrevDrawing == "" {
		t.Fatalf("next drawer should receive the previous drawing")
	}
	if len(room.Whispers.Chain) != 1 {
		t.Fatalf("chain length = %d, want 1", len(room.Whispers.Chain))
	}
}

func TestSubmitDrawingOutOfTurn(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	drawer := room.currentDrawerID()
	other := "p1"
	if other == drawer {
		other = "p2"
	}
	if _, err := room.SubmitDrawing(other, "data:image/png;base64,aGk="); err == nil {
		t.Fatalf("expected an out-of-turn rejection")
	}
}

func TestSubmitDrawingTooLarge(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	big := "data:image/png;base64," + strings.Repeat("A", maxDrawingBytes)
	_, err := room.SubmitDrawing(room.currentDrawerID(), big)
	if err == nil || errorCode(err) != codeValidation {
		t.Fatalf("oversized drawing: err = %v, want validation", err)
	}
}

func TestLastDrawingBeginsGuessing(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	drawThrough(t, room)
	if room.State != stateGuessing {
		t.Fatalf("state = %s, want guessing", room.State)
	}
}

func TestDuplicateGuessIgnored(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben", "Cleo")
	drawThrough(t, room)
	if _, err := room.SubmitGuess("p1", room.Whispers.Word); err != nil {
		t.Fatalf("first guess: %v", err)
	}
	before := room.Players["p1"].Score
	out, err := room.SubmitGuess("p1", "something else")
	if err != nil {
		t.Fatalf("second guess: %v", err)
	}
	if !out.Duplicate {
		t.Fatalf("second guess should be flagged duplicate")
	}
	if room.Players["p1"].Score != before {
		t.Fatalf("duplicate guess changed the score")
	}
}

func TestHostCannotGuess(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	drawThrough(t, room)
	if _, err := room.SubmitGuess("host", room.Whispers.Word); err == nil {
		t.Fatalf("expected the host guess to be rejected")
	}
}

func TestAllGuessesCompleteRound(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	drawThrough(t, room)
	word := room.Whispers.Word
	if out, err := room.SubmitGuess("p1", word); err != nil || out.Round != nil {
		t.Fatalf("first guess: out=%+v err=%v", out, err)
	}
	out, err := room.SubmitGuess("p2", "wrong")
	if err != nil {
		t.Fatalf("second guess: %v", err)
	}
	if out.Round == nil {
		t.Fatalf("round should complete once everyone guessed")
	}
	if out.Round.Reason != "all_answered" {
		t.Fatalf("reason = %q, want all_answered", out.Round.Reason)
	}
	if out.Round.Next == nil || out.Round.Finished {
		t.Fatalf("round 1 of 3 should roll to round 2: %+v", out.Round)
	}
	if room.Round != 2 {
		t.Fatalf("room round = %d, want 2", room.Round)
	}
}

func TestCorrectGuessScoresAndStreaks(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben", "Cleo")
	drawThrough(t, room)
	out, err := room.SubmitGuess("p1", " "+strings.ToUpper(room.Whispers.Word)+" ")
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !out.Correct {
		t.Fatalf("case and whitespace should not matter")
	}
	if out.Breakdown.Base != room.cfg.Points.CorrectGuess {
		t.Fatalf("base = %d, want %d", out.Breakdown.Base, room.cfg.Points.CorrectGuess)
	}
	if room.Players["p1"].Streak != 1 {
		t.Fatalf("streak = %d, want 1", room.Players["p1"].Streak)
	}
}

func TestDrawingTimeoutSkipsDrawer(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben", "Cleo")
	drawer := room.currentDrawerID()
	out, round := room.timeoutWhispers()
	if round != nil {
		t.Fatalf("round should not close on a drawing-phase timeout")
	}
	if out.NextDrawerID == drawer || out.NextDrawerID == "" {
		t.Fatalf("timeout did not skip the absent drawer")
	}
	if p, _ := room.player(drawer); p.Skips != 1 || p.Streak != 0 {
		t.Fatalf("skipped drawer should be penalized: skips=%d streak=%d", p.Skips, p.Streak)
	}
}

func TestGuessTimeoutClosesRound(t *testing.T) {
	room := startWhispers(t, "Ada", "Ben")
	drawThrough(t, room)
	if _, err := room.SubmitGuess("p1", room.Whispers.Word); err != nil {
		t.Fatalf("guess: %v", err)
	}
	out, round := room.timeoutWhispers()
	if out != nil {
		t.Fatalf("no drawing outcome expected in the guessing phase")
	}
	if round == nil || round.Reason != "timeout" {
		t.Fatalf("round = %+v, want a timeout close", round)
	}
	if p, _ := room.player("p2"); p.Skips != 1 {
		t.Fatalf("silent guesser should be skipped: skips=%d", p.Skips)
	}
}
