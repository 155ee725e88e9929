package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Points holds every scoring constant. Values are read once at startup and
// passed into rooms by value; rooms never mutate them.
type Points struct {
	CorrectGuess     int
	PartialGuess     int
	CorrectTrivia    int
	FastAnswerBonus  int
	ChaseWin         int
	ChaseCatch       int
	Participation    int
	ComebackBonus    int
	PerfectRound     int
	StreakMultiplier float64
}

type Config struct {
	Addr           string
	AllowedOrigins []string
	DatabaseURL    string

	RoundsPerGame       int
	MinPlayers          int
	MaxPlayers          int
	DrawSeconds         int
	GuessSeconds        int
	TriviaSeconds       int
	ChaseSeconds        int
	MaxConsecutiveSkips int
	ChaseBoardSize      int
	SweepGraceSeconds   int
	SweepIntervalSecs   int

	// Difficulty tier thresholds as fractions of total rounds.
	EasyUntil   float64
	MediumUntil float64

	Points Points

	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
}

func Default() Config {
	return Config{
		Addr:                ":8080",
		AllowedOrigins:      []string{"*"},
		RoundsPerGame:       3,
		MinPlayers:          2,
		MaxPlayers:          12,
		DrawSeconds:         60,
		GuessSeconds:        30,
		TriviaSeconds:       20,
		ChaseSeconds:        15,
		MaxConsecutiveSkips: 2,
		ChaseBoardSize:      7,
		SweepGraceSeconds:   60,
		SweepIntervalSecs:   30,
		EasyUntil:           0.3,
		MediumUntil:         0.7,
		Points: Points{
			CorrectGuess:     100,
			PartialGuess:     50,
			CorrectTrivia:    100,
			FastAnswerBonus:  50,
			ChaseWin:         500,
			ChaseCatch:       300,
			Participation:    10,
			ComebackBonus:    20,
			PerfectRound:     200,
			StreakMultiplier: 0.1,
		},
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
	}
}

func Load() Config {
	cfg := Default()
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = strings.Split(raw, ",")
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	loadInt(&cfg.RoundsPerGame, "ROUNDS_PER_GAME")
	loadInt(&cfg.MinPlayers, "MIN_PLAYERS")
	loadInt(&cfg.MaxPlayers, "MAX_PLAYERS")
	loadInt(&cfg.DrawSeconds, "DRAW_SECONDS")
	loadInt(&cfg.GuessSeconds, "GUESS_SECONDS")
	loadInt(&cfg.TriviaSeconds, "TRIVIA_SECONDS")
	loadInt(&cfg.ChaseSeconds, "CHASE_SECONDS")
	loadInt(&cfg.MaxConsecutiveSkips, "MAX_CONSECUTIVE_SKIPS")
	loadInt(&cfg.ChaseBoardSize, "CHASE_BOARD_SIZE")
	loadInt(&cfg.SweepGraceSeconds, "SWEEP_GRACE_SECONDS")
	loadInt(&cfg.SweepIntervalSecs, "SWEEP_INTERVAL_SECONDS")
	loadInt(&cfg.Points.CorrectGuess, "POINTS_CORRECT_GUESS")
	loadInt(&cfg.Points.PartialGuess, "POINTS_PARTIAL_GUESS")
	loadInt(&cfg.Points.CorrectTrivia, "POINTS_CORRECT_TRIVIA")
	loadInt(&cfg.Points.FastAnswerBonus, "POINTS_FAST_ANSWER_BONUS")
	loadInt(&cfg.Points.ChaseWin, "POINTS_CHASE_WIN")
	loadInt(&cfg.Points.ChaseCatch, "POINTS_CHASE_CATCH")
	loadInt(&cfg.Points.Participation, "POINTS_PARTICIPATION")
	loadInt(&cfg.Points.ComebackBonus, "POINTS_COMEBACK_BONUS")
	loadInt(&cfg.Points.PerfectRound, "POINTS_PERFECT_ROUND")
	loadInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	loadInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	loadInt(&cfg.DBConnMaxLifetimeSeconds, "DB_CONN_MAX_LIFETIME_SECONDS")
	if raw := os.Getenv("POINTS_STREAK_MULTIPLIER"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value >= 0 {
			cfg.Points.StreakMultiplier = value
		}
	}
	return cfg
}

func loadInt(dst *int, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil && value > 0 {
		*dst = value
	}
}

// TimeLimit returns the answer window for one round of the given game kind,
// widened for larger rooms: 4-6 players get 5 extra seconds, 7 or more get 10.
func (c Config) TimeLimit(gameKind string, playerCount int) time.Duration {
	base := 0
	switch gameKind {
	case "whispers":
		base = c.GuessSeconds
	case "whispers_drawing":
		base = c.DrawSeconds
	case "trivia":
		base = c.TriviaSeconds
	case "chase":
		base = c.ChaseSeconds
	}
	switch {
	case playerCount >= 7:
		base += 10
	case playerCount >= 4:
		base += 5
	}
	return time.Duration(base) * time.Second
}

// DifficultyFor maps round progress onto a difficulty tier. The first round
// is always the easy tier.
func (c Config) DifficultyFor(round, totalRounds int) string {
	if totalRounds <= 0 || round < 1 {
		return "easy"
	}
	progress := float64(round-1) / float64(totalRounds)
	switch {
	case progress < c.EasyUntil:
		return "easy"
	case progress < c.MediumUntil:
		return "medium"
	default:
		return "hard"
	}
}
