package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is an immutable record of one completed, scored quiz.
// Rows are append-only; nothing in the service layer updates or deletes them.
type Attempt struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	Score          int             `json:"score" gorm:"not null"`
	CorrectCount   int             `json:"correct_count" gorm:"not null"`
	IncorrectCount int             `json:"incorrect_count" gorm:"not null"`
	TotalQuestions int             `json:"total_questions" gorm:"not null"`
	ElapsedSeconds int             `json:"elapsed_seconds" gorm:"not null"`
	SubmittedAt    time.Time       `json:"submitted_at" gorm:"not null;index"`
	Answers        []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
