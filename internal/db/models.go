package db

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"size:64;uniqueIndex;not null"`
	ProfilePicture []byte    `gorm:"type:bytea"`
	GamesPlayed    int       `gorm:"not null;default:0"`
	TotalScore     int       `gorm:"not null;default:0"`
	HighestScore   int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Scores         []GameScore
	Achievements   []Achievement
}

type GameScore struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"index;not null"`
	GameKind       string    `gorm:"size:32;index;not null"`
	Score          int       `gorm:"not null"`
	CorrectAnswers int       `gorm:"not null"`
	TotalQuestions int       `gorm:"not null"`
	PlayedAt       time.Time `gorm:"not null"`
}

type Achievement struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null;uniqueIndex:idx_achievements_user_name"`
	Name        string    `gorm:"size:64;not null;uniqueIndex:idx_achievements_user_name"`
	Description string    `gorm:"size:280;not null"`
	UnlockedAt  time.Time `gorm:"not null"`
}

// RoomEvent is the append-only audit trail of room lifecycle transitions.
type RoomEvent struct {
	ID        uint           `gorm:"primaryKey"`
	RoomCode  string         `gorm:"size:12;index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
