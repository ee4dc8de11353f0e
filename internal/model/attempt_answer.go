package model

import (
	"time"

	"gorm.io/gorm"
)

// AttemptAnswer keeps the per-question breakdown of an attempt for
// history/audit display.
type AttemptAnswer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AttemptID    uint           `json:"attempt_id" gorm:"not null;index"`
	Position     int            `json:"position" gorm:"not null"`
	Prompt       string         `json:"prompt" gorm:"type:text;not null"`
	ChosenLabel  string         `json:"chosen_label"`
	CorrectLabel string         `json:"correct_label" gorm:"not null"`
	Correct      bool           `json:"correct" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
