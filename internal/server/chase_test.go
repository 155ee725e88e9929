package server

import (
	"testing"

	"party-games/internal/config"
	"party-games/internal/content"
)

func startChase(t *testing.T, cfg config.Config, names ...string) *Room {
	t.Helper()
	room := testRoom(t, cfg, names...)
	if _, err := room.StartGame("host", gameChase, content.ChaseCategories()[0]); err != nil {
		t.Fatalf("start chase: %v", err)
	}
	return room
}

// chaseRoles returns the contestant's session id after the host puts the first
// non-chaser player on the track.
func chaseRoles(t *testing.T, room *Room) (contestant string) {
	t.Helper()
	for _, p := range room.connectedPlayers() {
		if p.SessionID != room.Chase.ChaserID {
			contestant = p.SessionID
			break
		}
	}
	if _, err := room.SelectContestant("host", contestant); err != nil {
		t.Fatalf("select contestant: %v", err)
	}
	return contestant
}

func TestSelectContestantRejectsChaser(t *testing.T) {
	room := startChase(t, config.Default(), "Ada", "Ben")
	if _, err := room.SelectContestant("host", room.Chase.ChaserID); err == nil {
		t.Fatalf("the chaser cannot be the contestant")
	}
	if _, err := room.SelectContestant("p1", "p2"); err == nil {
		t.Fatalf("only the host selects the contestant")
	}
}

func TestChaseContestantEscape(t *testing.T) {
	cfg := config.Default()
	room := startChase(t, cfg, "Ada", "Ben")
	contestant := chaseRoles(t, room)
	room.Chase.Position = cfg.ChaseBoardSize - 1
	before := room.Players[contestant].Score

	out, err := room.SubmitChaseAnswer(contestant, room.currentChaseQuestion().Correct, false)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !out.GameOver || out.Winner != "contestant" {
		t.Fatalf("reaching the board end should end the duel: %+v", out)
	}
	if out.WinBonus != cfg.Points.ChaseWin {
		t.Fatalf("win bonus = %d, want %d", out.WinBonus, cfg.Points.ChaseWin)
	}
	if got := room.Players[contestant].Score - before; got != cfg.Points.ChaseWin {
		t.Fatalf("escape should add exactly the win bonus, added %d", got)
	}
	if out.NextRound != 2 || room.State != stateChaseSetup {
		t.Fatalf("duel 1 of 3 should loop back to setup: %+v state=%s", out, room.State)
	}
}

func TestChaseCatch(t *testing.T) {
	cfg := config.Default()
	room := startChase(t, cfg, "Ada", "Ben")
	chaseRoles(t, room)
	chaser := room.Chase.ChaserID
	before := room.Players[chaser].Score

	out, err := room.SubmitChaseAnswer(chaser, room.currentChaseQuestion().Correct, false)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !out.GameOver || out.Winner != "chaser" {
		t.Fatalf("a catch from the start position should end the duel: %+v", out)
	}
	if out.Position != -1 || out.PositionChange != -1 {
		t.Fatalf("position = %d change = %d, want -1/-1", out.Position, out.PositionChange)
	}
	if got := room.Players[chaser].Score - before; got != cfg.Points.ChaseCatch {
		t.Fatalf("catch should add exactly the catch bonus, added %d", got)
	}
}

func TestChaseDoubleStepClampsAtBoard(t *testing.T) {
	cfg := config.Default()
	room := startChase(t, cfg, "Ada", "Ben")
	contestant := chaseRoles(t, room)

	out, err := room.SubmitChaseAnswer(contestant, room.currentChaseQuestion().Correct, true)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.PositionChange != 2 || out.Position != 2 {
		t.Fatalf("double step should move two: %+v", out)
	}
	if room.Chase.DoubleSteps != 0 {
		t.Fatalf("the power-up should be spent")
	}

	// A second double request has no charge left.
	out, err = room.SubmitChaseAnswer(contestant, room.currentChaseQuestion().Correct, true)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.PositionChange != 1 {
		t.Fatalf("spent power-up should fall back to one step: %+v", out)
	}

	room.Chase.Position = cfg.ChaseBoardSize - 1
	room.Chase.DoubleSteps = 1
	out, err = room.SubmitChaseAnswer(contestant, room.currentChaseQuestion().Correct, true)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.PositionChange != 1 || out.Position != cfg.ChaseBoardSize {
		t.Fatalf("step should clamp at the board edge: %+v", out)
	}
	if !out.GameOver || out.Winner != "contestant" {
		t.Fatalf("clamped step at the edge should still win: %+v", out)
	}
}

func TestChaseWrongAnswersExhaustQueue(t *testing.T) {
	room := startChase(t, config.Default(), "Ada", "Ben")
	contestant := chaseRoles(t, room)
	queue := len(room.Chase.Questions)

	var out *ChaseOutcome
	var err error
	for i := 0; i < queue; i++ {
		out, err = room.SubmitChaseAnswer(contestant, "no idea", false)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	if !out.GameOver {
		t.Fatalf("exhausting the queue should end the duel")
	}
	if out.Winner != "chaser" {
		t.Fatalf("at the starting midpoint the chaser takes the duel: %+v", out)
	}
}

func TestChaseTimeoutDiscardsQuestion(t *testing.T) {
	room := startChase(t, config.Default(), "Ada", "Ben")
	chaseRoles(t, room)
	queue := len(room.Chase.Questions)

	out := room.timeoutChase()
	if out == nil || out.GameOver {
		t.Fatalf("a timeout mid-queue should only discard the question: %+v", out)
	}
	if out.NextQuestion == nil || len(room.Chase.Questions) != queue-1 {
		t.Fatalf("queue should shrink by one")
	}
	if room.Chase.Position != 0 {
		t.Fatalf("timeout moved the position")
	}
}

func TestChaseFinalDuelFinishesGame(t *testing.T) {
	cfg := config.Default()
	cfg.RoundsPerGame = 1
	room := startChase(t, cfg, "Ada", "Ben")
	contestant := chaseRoles(t, room)
	room.Chase.Position = cfg.ChaseBoardSize - 1

	out, err := room.SubmitChaseAnswer(contestant, room.currentChaseQuestion().Correct, false)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !out.GameOver || out.Round == nil || !out.Round.Finished {
		t.Fatalf("the last duel should finish the game: %+v", out)
	}
	if out.Round.Final == nil || room.State != stateFinished {
		t.Fatalf("final result missing: %+v state=%s", out.Round, room.State)
	}
}

func TestChaseChaserDisconnectCancels(t *testing.T) {
	room := startChase(t, config.Default(), "Ada", "Ben")
	chaseRoles(t, room)
	out, err := room.Disconnect(room.Chase.ChaserID)
	if err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if !out.ChaseCancelled {
		t.Fatalf("losing the chaser should cancel the chase")
	}
	if room.State != stateWaiting || room.Game != "" {
		t.Fatalf("room should fall back to the lobby: state=%s", room.State)
	}
}

func TestChaseContestantDisconnectReturnsToSetup(t *testing.T) {
	room := startChase(t, config.Default(), "Ada", "Ben", "Cleo")
	contestant := chaseRoles(t, room)
	out, err := room.Disconnect(contestant)
	if err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if !out.ChaseCancelled || out.ChaseReason != "Contestant disconnected" {
		t.Fatalf("outcome = %+v", out)
	}
	if room.State != stateChaseSetup || room.Chase.ContestantID != "" {
		t.Fatalf("room should wait for a new contestant: state=%s", room.State)
	}
}
