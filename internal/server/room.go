package server

import (
	"math/rand"
	"sort"
	"time"

	"party-games/internal/content"
)

type PlayerSummary struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	Profile   string `json:"profile_picture,omitempty"`
}

type LeaderboardEntry struct {
	Name          string `json:"name"`
	Score         int    `json:"score"`
	Streak        int    `json:"streak"`
	PerfectRounds int    `json:"perfect_rounds"`
}

type JoinOutcome struct {
	Player        *Player
	Rejoined      bool
	EvictedHostID string
	Players       []PlayerSummary
}

type LeaveOutcome struct {
	PlayerName     string
	WasHost        bool
	Players        []PlayerSummary
	TurnAdvanced   bool
	NextDrawer     string
	NextDrawerID   string
	Word           string
	ChaseCancelled bool
	ChaseReason    string
	GameCancelled  bool
	CancelReason   string
	State          string
	RoomEmpty      bool
}

// RoundContent is what a fresh round puts in front of the players.
type RoundContent struct {
	Round      int
	Difficulty string
	// Whispers
	Word       string
	DrawerID   string
	DrawerName string
	TurnOrder  []string
	// Trivia
	Question *content.Question
}

type StartOutcome struct {
	Game        string
	Round       int
	TotalRounds int
	HostID      string
	Music       string
	Content     RoundContent
	// Chase
	ChaserID   string
	ChaserName string
	Category   string
	BoardSize  int
}

type PlayerResult struct {
	Name          string `json:"name"`
	Score         int    `json:"score"`
	Correct       int    `json:"correct_answers"`
	PerfectRounds int    `json:"perfect_rounds"`
	Winner        bool   `json:"winner"`
}

type GameResult struct {
	Game        string
	Winner      string
	TotalRounds int
	Leaderboard []LeaderboardEntry
	Results     []PlayerResult
}

// RoundOutcome reports the end of a round: either the next round's content or
// the final game result.
type RoundOutcome struct {
	Round       int
	Reason      string
	HostID      string
	RoundScores map[string]int
	Leaderboard []LeaderboardEntry
	Finished    bool
	Music       string
	Next        *RoundContent
	Final       *GameResult
}

// Join adds or reconnects a session. Host joins evict any prior host; player
// joins collide on names held by connected players and migrate identity from
// disconnected ones.
func (r *Room) Join(sessionID, name string, isHost bool, profile string) (*JoinOutcome, error) {
	r.touch()
	out := &JoinOutcome{}

	if isHost {
		if r.HostID != "" && r.HostID != sessionID {
			delete(r.Players, r.HostID)
			out.EvictedHostID = r.HostID
		}
		r.HostID = sessionID
		r.Players[sessionID] = &Player{
			SessionID: sessionID,
			Name:      "Host",
			Role:      roleHost,
			Connected: true,
			JoinedAt:  time.Now().UTC(),
		}
		out.Player = r.Players[sessionID]
		out.Players = r.playerSummaries()
		r.emptySince = time.Time{}
		return out, nil
	}

	cleaned, err := validateName(name)
	if err != nil {
		return nil, validationError(err.Error())
	}

	var stale *Player
	for _, p := range r.Players {
		if p.isHost() || p.Name != cleaned {
			continue
		}
		if p.Connected {
			return nil, errNameTaken
		}
		stale = p
	}

	player := &Player{
		SessionID: sessionID,
		Name:      cleaned,
		Role:      rolePlayer,
		Connected: true,
		Profile:   profile,
		JoinedAt:  time.Now().UTC(),
	}
	if stale != nil {
		// Reconnect under the same name: migrate the identity, scores and
		// all, onto the new session and drop the stale entry.
		player.Score = stale.Score
		player.Streak = stale.Streak
		player.Skips = stale.Skips
		player.PerfectRounds = stale.PerfectRounds
		player.CorrectAnswers = stale.CorrectAnswers
		player.RoundScore = stale.RoundScore
		player.RoundWrong = stale.RoundWrong
		player.JoinedAt = stale.JoinedAt
		if profile == "" {
			player.Profile = stale.Profile
		}
		delete(r.Players, stale.SessionID)
		r.migrateSession(stale.SessionID, sessionID)
		out.Rejoined = true
	} else if r.connectedCount() >= r.cfg.MaxPlayers {
		return nil, stateConflict("room is full")
	}

	r.Players[sessionID] = player
	out.Player = player
	out.Players = r.playerSummaries()
	r.emptySince = time.Time{}
	return out, nil
}

// migrateSession rewrites sub-state references from a stale session id to the
// reconnecting one so turn order and chase roles survive the reconnect.
func (r *Room) migrateSession(oldID, newID string) {
	for i, sid := range r.Whispers.TurnOrder {
		if sid == oldID {
			r.Whispers.TurnOrder[i] = newID
		}
	}
	if guess, ok := r.Whispers.Guesses[oldID]; ok {
		delete(r.Whispers.Guesses, oldID)
		r.Whispers.Guesses[newID] = guess
	}
	if r.Trivia.Answers != nil {
		if answer, ok := r.Trivia.Answers[oldID]; ok {
			delete(r.Trivia.Answers, oldID)
			r.Trivia.Answers[newID] = answer
		}
	}
	if r.Chase.ChaserID == oldID {
		r.Chase.ChaserID = newID
	}
	if r.Chase.ContestantID == oldID {
		r.Chase.ContestantID = newID
	}
}

// Disconnect marks the session disconnected, preserving score and stats for a
// later rejoin under the same name.
func (r *Room) Disconnect(sessionID string) (*LeaveOutcome, error) {
	player, ok := r.player(sessionID)
	if !ok {
		return nil, errPlayerNotFound
	}
	r.touch()
	player.Connected = false
	out := &LeaveOutcome{PlayerName: player.Name, WasHost: player.isHost()}

	if r.Game == gameChase && r.playing() {
		switch sessionID {
		case r.Chase.ChaserID:
			r.Chase = ChaseState{}
			r.Game = ""
			r.State = stateWaiting
			out.ChaseCancelled = true
			out.ChaseReason = "Chaser disconnected"
			r.cancelTimerLocked()
		case r.Chase.ContestantID:
			r.Chase.ContestantID = ""
			r.Chase.Position = 0
			r.State = stateChaseSetup
			out.ChaseCancelled = true
			out.ChaseReason = "Contestant disconnected"
			r.cancelTimerLocked()
		}
	}

	if r.State == statePlaying && r.Game == gameWhispers && r.currentDrawerID() == sessionID {
		if next, found := r.advanceTurnWrapping(); found {
			out.TurnAdvanced = true
			out.NextDrawerID = next
			out.Word = r.Whispers.Word
			if p, ok := r.player(next); ok {
				out.NextDrawer = p.Name
			}
		}
	}

	if r.playing() && r.connectedCount() < r.cfg.MinPlayers {
		r.State = stateWaiting
		r.Game = ""
		r.Whispers = WhispersState{}
		r.Trivia = TriviaState{}
		r.Chase = ChaseState{}
		r.cancelTimerLocked()
		out.GameCancelled = true
		out.CancelReason = "Not enough players"
	}

	if !r.anyConnected() {
		r.emptySince = time.Now().UTC()
		out.RoomEmpty = true
	}
	out.Players = r.playerSummaries()
	out.State = r.State
	return out, nil
}

// StartGame begins a mini-game. Only the host can start; round counter and
// non-host scores reset.
func (r *Room) StartGame(requesterID, kind, category string) (*StartOutcome, error) {
	if requesterID != r.HostID {
		return nil, errNotHost
	}
	if r.playing() {
		return nil, stateConflict("a game is already in progress")
	}
	switch kind {
	case gameWhispers, gameTrivia, gameChase:
	default:
		return nil, validationError("unknown game kind")
	}
	players := r.connectedPlayers()
	if len(players) < r.cfg.MinPlayers {
		return nil, errNotEnough
	}

	// Resolve everything that can still fail before touching room state, so a
	// rejected start leaves the room exactly as it was.
	var chaseQuestions []content.ChaseQuestion
	if kind == gameChase {
		if category == "" {
			categories := content.ChaseCategories()
			category = categories[rand.Intn(len(categories))]
		}
		var found bool
		chaseQuestions, found = content.NextChaseQuestions(category)
		if !found {
			return nil, validationError("unknown chase category")
		}
	}

	r.touch()
	r.Game = kind
	r.Round = 1
	r.TotalRounds = r.cfg.RoundsPerGame
	r.Difficulty = r.cfg.DifficultyFor(1, r.TotalRounds)
	r.UsedWords = make(map[string]struct{})
	r.UsedQuestions = make(map[string]struct{})
	for _, p := range r.Players {
		if p.isHost() {
			continue
		}
		p.Score = 0
		p.Streak = 0
		p.Skips = 0
		p.PerfectRounds = 0
		p.CorrectAnswers = 0
		p.RoundScore = 0
		p.RoundWrong = false
	}

	out := &StartOutcome{
		Game:        kind,
		Round:       r.Round,
		TotalRounds: r.TotalRounds,
		HostID:      r.HostID,
	}
	switch kind {
	case gameWhispers:
		order := make([]string, 0, len(players))
		for _, p := range players {
			order = append(order, p.SessionID)
		}
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		r.Whispers = WhispersState{
			TurnOrder: order,
			Word:      r.nextWord(),
			Guesses:   make(map[string]string),
		}
		r.State = statePlaying
		out.Music = musicDrawing
		out.Content = r.roundContent()
	case gameTrivia:
		question := r.nextQuestion()
		r.Trivia = TriviaState{
			Question:  &question,
			Answers:   make(map[string]TriviaAnswer),
			StartedAt: time.Now().UTC(),
		}
		r.State = statePlaying
		out.Music = musicTrivia
		out.Content = r.roundContent()
	case gameChase:
		chaser := players[rand.Intn(len(players))]
		r.Chase = ChaseState{
			ChaserID:    chaser.SessionID,
			Category:    category,
			Questions:   chaseQuestions,
			DoubleSteps: 1,
		}
		r.State = stateChaseSetup
		out.Music = musicChase
		out.ChaserID = chaser.SessionID
		out.ChaserName = chaser.Name
		out.Category = category
		out.BoardSize = r.cfg.ChaseBoardSize
	}
	return out, nil
}

// finishRound closes the current whispers/trivia round: perfect-round bonuses,
// then either the next round's content or the final result.
func (r *Room) finishRound(reason string) *RoundOutcome {
	out := &RoundOutcome{
		Round:       r.Round,
		Reason:      reason,
		RoundScores: make(map[string]int),
		HostID:      r.HostID,
	}
	for _, p := range r.Players {
		if p.isHost() {
			continue
		}
		out.RoundScores[p.Name] = p.RoundScore
		if p.RoundScore > 0 && !p.RoundWrong {
			p.PerfectRounds++
			p.Score += r.cfg.Points.PerfectRound
		}
	}
	out.Leaderboard = r.leaderboard()

	if r.Round >= r.TotalRounds {
		out.Finished = true
		out.Music = musicGameOver
		out.Final = r.finishGame()
		return out
	}

	next := r.advanceRound()
	out.Music = musicRoundTransition
	out.Next = &next
	return out
}

// advanceRound moves to the next round: transient state reset, difficulty
// recomputed from round progress, fresh content drawn, and for whispers a
// catch-up shuffle that slots the lowest scorer into an early turn.
func (r *Room) advanceRound() RoundContent {
	r.Round++
	r.Difficulty = r.cfg.DifficultyFor(r.Round, r.TotalRounds)
	for _, p := range r.Players {
		p.RoundScore = 0
		p.RoundWrong = false
	}
	switch r.Game {
	case gameWhispers:
		r.Whispers = WhispersState{
			TurnOrder: r.catchupTurnOrder(),
			Word:      r.nextWord(),
			Guesses:   make(map[string]string),
		}
		r.State = statePlaying
	case gameTrivia:
		question := r.nextQuestion()
		r.Trivia = TriviaState{
			Question:  &question,
			Answers:   make(map[string]TriviaAnswer),
			StartedAt: time.Now().UTC(),
		}
		r.State = statePlaying
	}
	return r.roundContent()
}

func (r *Room) roundContent() RoundContent {
	rc := RoundContent{Round: r.Round, Difficulty: r.Difficulty}
	switch r.Game {
	case gameWhispers:
		rc.Word = r.Whispers.Word
		rc.DrawerID = r.currentDrawerID()
		if p, ok := r.player(rc.DrawerID); ok {
			rc.DrawerName = p.Name
		}
		for _, sid := range r.Whispers.TurnOrder {
			if p, ok := r.player(sid); ok {
				rc.TurnOrder = append(rc.TurnOrder, p.Name)
			}
		}
	case gameTrivia:
		rc.Question = r.Trivia.Question
	}
	return rc
}

// catchupTurnOrder shuffles the turn order but biases the current lowest
// scorer into the first half of the round.
func (r *Room) catchupTurnOrder() []string {
	players := r.connectedPlayers()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score < players[j].Score
	})
	if len(players) <= 2 {
		order := make([]string, 0, len(players))
		for _, p := range players {
			order = append(order, p.SessionID)
		}
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		return order
	}
	lowest := players[0].SessionID
	others := make([]string, 0, len(players)-1)
	for _, p := range players[1:] {
		others = append(others, p.SessionID)
	}
	rand.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	pos := rand.Intn(len(others)/2 + 1)
	order := make([]string, 0, len(players))
	order = append(order, others[:pos]...)
	order = append(order, lowest)
	order = append(order, others[pos:]...)
	return order
}

// finishGame transitions to the terminal state and builds the final result.
// Persistence and achievements run outside the room lock, off this value.
func (r *Room) finishGame() *GameResult {
	r.State = stateFinished
	r.cancelTimerLocked()
	board := r.leaderboard()
	result := &GameResult{
		Game:        r.Game,
		TotalRounds: r.TotalRounds,
		Leaderboard: board,
	}
	if len(board) > 0 {
		result.Winner = board[0].Name
	}
	for _, p := range r.Players {
		if p.isHost() {
			continue
		}
		result.Results = append(result.Results, PlayerResult{
			Name:          p.Name,
			Score:         p.Score,
			Correct:       p.CorrectAnswers,
			PerfectRounds: p.PerfectRounds,
			Winner:        p.Name == result.Winner,
		})
	}
	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].Score > result.Results[j].Score
	})
	return result
}

// leaderboard snapshots non-host players sorted by score. Disconnected
// players keep their place; their scores survive for reconnection.
func (r *Room) leaderboard() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(r.Players))
	for _, p := range r.Players {
		if p.isHost() {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Name:          p.Name,
			Score:         p.Score,
			Streak:        p.Streak,
			PerfectRounds: p.PerfectRounds,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func (r *Room) leaderScore() int {
	best := 0
	for _, p := range r.Players {
		if !p.isHost() && p.Score > best {
			best = p.Score
		}
	}
	return best
}

func (r *Room) playerSummaries() []PlayerSummary {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.isHost() && p.Connected {
			players = append(players, p)
		}
	}
	sortPlayersByJoin(players)
	summaries := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		summaries = append(summaries, PlayerSummary{
			Name:      p.Name,
			Score:     p.Score,
			Connected: p.Connected,
			Profile:   p.Profile,
		})
	}
	return summaries
}

// nextWord draws an unused word at the current difficulty, resetting the
// exclusion set only after the bank's easier-tier fallback is also exhausted.
func (r *Room) nextWord() string {
	word, ok := content.NextWord(r.Difficulty, r.UsedWords)
	if !ok {
		r.UsedWords = make(map[string]struct{})
		word, _ = content.NextWord(r.Difficulty, r.UsedWords)
	}
	r.UsedWords[word] = struct{}{}
	return word
}

func (r *Room) nextQuestion() content.Question {
	question, ok := content.NextQuestion(r.UsedQuestions)
	if !ok {
		r.UsedQuestions = make(map[string]struct{})
		question, _ = content.NextQuestion(r.UsedQuestions)
	}
	r.UsedQuestions[question.Text] = struct{}{}
	return question
}

func (r *Room) currentDrawerID() string {
	if r.Whispers.CurrentIndex < 0 || r.Whispers.CurrentIndex >= len(r.Whispers.TurnOrder) {
		return ""
	}
	return r.Whispers.TurnOrder[r.Whispers.CurrentIndex]
}

// advanceTurnWrapping moves the turn to the next connected player, wrapping
// and skipping disconnected entries. found is false when nobody in the turn
// order is connected.
func (r *Room) advanceTurnWrapping() (string, bool) {
	order := r.Whispers.TurnOrder
	if len(order) == 0 {
		return "", false
	}
	for step := 1; step <= len(order); step++ {
		idx := (r.Whispers.CurrentIndex + step) % len(order)
		if p, ok := r.player(order[idx]); ok && p.Connected {
			r.Whispers.CurrentIndex = idx
			return order[idx], true
		}
	}
	return "", false
}

func (r *Room) cancelTimerLocked() {
	r.timerGen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
