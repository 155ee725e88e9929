package server

import (
	"sort"
	"sync"
	"time"

	"party-games/internal/config"
	"party-games/internal/content"
)

// Room lifecycle states. "playing" covers the whispers drawing phase and the
// trivia question phase; whispers guessing and the two chase phases refine it.
const (
	stateWaiting       = "waiting"
	statePlaying       = "playing"
	stateGuessing      = "guessing"
	stateChaseSetup    = "chase_setup"
	stateChaseQuestion = "chase_question"
	stateFinished      = "finished"
)

const (
	gameWhispers = "whispers"
	gameTrivia   = "trivia"
	gameChase    = "chase"
)

const (
	roleHost   = "host"
	rolePlayer = "player"
)

// Music cues named in broadcast events; playback is entirely client-side.
const (
	musicLobby           = "lobby"
	musicDrawing         = "drawing"
	musicTrivia          = "trivia"
	musicChase           = "chase"
	musicRoundTransition = "round_transition"
	musicGameOver        = "game_over"
)

type Player struct {
	SessionID string
	Name      string
	Role      string
	Connected bool
	Profile   string

	Score          int
	Streak         int
	Skips          int
	PerfectRounds  int
	CorrectAnswers int

	// Per-round transients, cleared at round advance.
	RoundScore int
	RoundWrong bool

	JoinedAt time.Time
}

func (p *Player) isHost() bool {
	return p.Role == roleHost
}

type DrawingEntry struct {
	SessionID string `json:"-"`
	Name      string `json:"player"`
	Data      string `json:"drawing"`
}

type WhispersState struct {
	TurnOrder      []string
	CurrentIndex   int
	Word           string
	Chain          []DrawingEntry
	Guesses        map[string]string
	GuessStartedAt time.Time
}

type TriviaAnswer struct {
	Answer  string
	Elapsed float64
	Correct bool
}

type TriviaState struct {
	Question  *content.Question
	Answers   map[string]TriviaAnswer
	StartedAt time.Time
}

type ChaseState struct {
	ChaserID     string
	Category     string
	Questions    []content.ChaseQuestion
	ContestantID string
	// Position on the bounded track: 0 is the start, BoardSize is escape,
	// -1 means the chaser caught the contestant.
	Position    int
	DoubleSteps int
}

// Room is one isolated game session. All mutation happens under mu, taken by
// Registry.Update; fields are never touched outside that boundary once the
// room is registered.
type Room struct {
	mu sync.Mutex

	Code        string
	State       string
	Game        string
	Round       int
	TotalRounds int
	Difficulty  string

	Players map[string]*Player
	HostID  string

	UsedWords     map[string]struct{}
	UsedQuestions map[string]struct{}

	Whispers WhispersState
	Trivia   TriviaState
	Chase    ChaseState

	cfg config.Config

	timer    *time.Timer
	timerGen uint64

	CreatedAt    time.Time
	LastActivity time.Time
	emptySince   time.Time
}

func newRoom(code string, cfg config.Config) *Room {
	now := time.Now().UTC()
	return &Room{
		Code:          code,
		State:         stateWaiting,
		Round:         0,
		TotalRounds:   cfg.RoundsPerGame,
		Difficulty:    "easy",
		Players:       make(map[string]*Player),
		UsedWords:     make(map[string]struct{}),
		UsedQuestions: make(map[string]struct{}),
		cfg:           cfg,
		CreatedAt:     now,
		LastActivity:  now,
		emptySince:    now,
	}
}

// connectedPlayers returns connected non-host players, ordered by join time
// for stable snapshots.
func (r *Room) connectedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Connected && !p.isHost() {
			players = append(players, p)
		}
	}
	sortPlayersByJoin(players)
	return players
}

func (r *Room) connectedCount() int {
	count := 0
	for _, p := range r.Players {
		if p.Connected && !p.isHost() {
			count++
		}
	}
	return count
}

func (r *Room) anyConnected() bool {
	for _, p := range r.Players {
		if p.Connected {
			return true
		}
	}
	return false
}

func (r *Room) player(sessionID string) (*Player, bool) {
	p, ok := r.Players[sessionID]
	return p, ok
}

func (r *Room) playing() bool {
	switch r.State {
	case statePlaying, stateGuessing, stateChaseSetup, stateChaseQuestion:
		return true
	}
	return false
}

func (r *Room) touch() {
	r.LastActivity = time.Now().UTC()
}

func sortPlayersByJoin(players []*Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].Name < players[j].Name
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
}
