package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `json:"username" gorm:"not null;uniqueIndex"`
	Email        string         `json:"email" gorm:"not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Attempts     []Attempt      `json:"attempts,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
