package db

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jackc/pgconn"
)

// StatsDelta is one game's contribution to a user's lifetime stats.
type StatsDelta struct {
	GamesPlayed int
	TotalScore  int
	Score       int
}

// Store implements the persistence port the room core calls at game-complete
// and achievement checkpoints. Every method is safe to call concurrently.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// EnsureUser finds or creates the user row for a display name. A concurrent
// insert racing on the unique username index resolves to the existing row.
func (s *Store) EnsureUser(username string) (*User, error) {
	var user User
	err := s.conn.Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user = User{Username: username}
	if err := s.conn.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			if err := s.conn.Where("username = ?", username).First(&user).Error; err != nil {
				return nil, err
			}
			return &user, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) SaveProfilePicture(username string, image []byte) error {
	user, err := s.EnsureUser(username)
	if err != nil {
		return err
	}
	return s.conn.Model(&User{}).Where("id = ?", user.ID).
		Update("profile_picture", image).Error
}

func (s *Store) RecordGameResult(username, gameKind string, score, correct, total int) error {
	user, err := s.EnsureUser(username)
	if err != nil {
		return err
	}
	record := GameScore{
		UserID:         user.ID,
		GameKind:       gameKind,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		PlayedAt:       time.Now().UTC(),
	}
	return s.conn.Create(&record).Error
}

func (s *Store) UpsertUserStats(username string, delta StatsDelta) error {
	user, err := s.EnsureUser(username)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"games_played": gorm.Expr("games_played + ?", delta.GamesPlayed),
		"total_score":  gorm.Expr("total_score + ?", delta.TotalScore),
	}
	if delta.Score > user.HighestScore {
		updates["highest_score"] = delta.Score
	}
	return s.conn.Model(&User{}).Where("id = ?", user.ID).Updates(updates).Error
}

// AwardAchievement inserts the achievement if the user does not already hold
// it; re-awarding is a no-op.
func (s *Store) AwardAchievement(username, name, description string) error {
	user, err := s.EnsureUser(username)
	if err != nil {
		return err
	}
	record := Achievement{
		UserID:      user.ID,
		Name:        name,
		Description: description,
		UnlockedAt:  time.Now().UTC(),
	}
	if err := s.conn.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (s *Store) RecordRoomEvent(roomCode, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := RoomEvent{
		RoomCode: roomCode,
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.conn.Create(&event).Error
}

// TopScores returns the ten best single-game scores for a game kind, or the
// ten highest lifetime scores when gameKind is empty.
func (s *Store) TopScores(gameKind string) ([]ScoreRow, error) {
	rows := make([]ScoreRow, 0, 10)
	if gameKind == "" {
		var users []User
		if err := s.conn.Order("highest_score DESC").Limit(10).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, user := range users {
			rows = append(rows, ScoreRow{
				Username:    user.Username,
				Score:       user.HighestScore,
				GamesPlayed: user.GamesPlayed,
			})
		}
		return rows, nil
	}
	var scores []GameScore
	if err := s.conn.Where("game_kind = ?", gameKind).
		Order("score DESC").Limit(10).Find(&scores).Error; err != nil {
		return nil, err
	}
	for _, score := range scores {
		var user User
		if err := s.conn.First(&user, score.UserID).Error; err != nil {
			continue
		}
		rows = append(rows, ScoreRow{
			Username: user.Username,
			Score:    score.Score,
			PlayedAt: score.PlayedAt,
		})
	}
	return rows, nil
}

// UserProfile returns a user's stats and unlocked achievements.
func (s *Store) UserProfile(username string) (*User, []Achievement, error) {
	var user User
	if err := s.conn.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, nil, err
	}
	var achievements []Achievement
	if err := s.conn.Where("user_id = ?", user.ID).
		Order("unlocked_at ASC").Find(&achievements).Error; err != nil {
		return nil, nil, err
	}
	return &user, achievements, nil
}

type ScoreRow struct {
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	GamesPlayed int       `json:"games_played,omitempty"`
	PlayedAt    time.Time `json:"played_at,omitempty"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
