package server

import (
	"strings"

	"party-games/internal/config"
)

// scoreInput is everything the scoring engine needs. Streak and Skips are the
// counters after the caller applied this answer's update (correct increments
// the streak and clears skips; wrong clears the streak and increments skips).
// PlayerScore and LeaderScore come from a snapshot taken before this event, so
// the comeback bonus can never trigger itself and a tied leader never
// qualifies.
type scoreInput struct {
	GameKind  string
	Correct   bool
	Guess     string
	Target    string
	Elapsed   float64 // seconds; negative when no timing is available
	TimeLimit float64

	Streak int
	Skips  int

	PlayerScore int
	LeaderScore int

	Points   config.Points
	MaxSkips int
}

type ScoreBreakdown struct {
	Base          int `json:"base_score"`
	StreakBonus   int `json:"streak_bonus"`
	TimeBonus     int `json:"time_bonus"`
	ComebackBonus int `json:"comeback_bonus"`
	Participation int `json:"participation_bonus"`
	Total         int `json:"total_score"`
}

// scoreAnswer is a pure computation over explicit inputs; it reads no room
// state and is the single place score components are defined.
func scoreAnswer(in scoreInput) ScoreBreakdown {
	var out ScoreBreakdown

	if in.Correct {
		if in.GameKind == gameWhispers {
			out.Base = in.Points.CorrectGuess
		} else {
			out.Base = in.Points.CorrectTrivia
		}
		if in.Streak > 1 {
			multiplier := float64(in.Streak) * in.Points.StreakMultiplier
			if multiplier > 0.5 {
				multiplier = 0.5
			}
			out.StreakBonus = int(float64(out.Base) * multiplier)
		}
		if in.Elapsed >= 0 && in.TimeLimit > 0 {
			factor := (in.TimeLimit - in.Elapsed) / in.TimeLimit
			if factor < 0 {
				factor = 0
			}
			out.TimeBonus = int(float64(in.Points.FastAnswerBonus) * factor)
		}
	} else if in.GameKind == gameWhispers {
		// Partial credit for every word shared with the target.
		if shared := sharedWords(in.Guess, in.Target); shared > 0 {
			out.Base = in.Points.PartialGuess * shared
		}
	}

	out.Participation = in.Points.Participation
	if in.MaxSkips > 0 && in.Skips >= in.MaxSkips {
		out.Participation = 0
	}

	if in.LeaderScore > 0 && in.PlayerScore*2 < in.LeaderScore {
		out.ComebackBonus = in.Points.ComebackBonus
	}

	out.Total = out.Base + out.StreakBonus + out.TimeBonus +
		out.ComebackBonus + out.Participation
	return out
}

func sharedWords(guess, target string) int {
	guessWords := strings.Fields(strings.ToLower(guess))
	targetWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(target)) {
		targetWords[w] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{})
	for _, w := range guessWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := targetWords[w]; ok {
			shared++
		}
	}
	return shared
}
