package repository

import (
	"github.com/hoanglm/quizforge/internal/model"
	"gorm.io/gorm"
)

// UserBest is one user's best score, used as leaderboard input.
type UserBest struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

type AttemptRepository interface {
	// Create appends one immutable attempt (with its per-question breakdown).
	Create(attempt *model.Attempt) error
	// FindAllByUser returns a user's attempts, newest first, answers included.
	FindAllByUser(userID uint) ([]model.Attempt, error)
	// UserBests returns the best score per user having at least one attempt,
	// ordered by ascending user ID (insertion order); ranking happens in the
	// service layer.
	UserBests() ([]UserBest, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	// GORM creates the associated AttemptAnswer rows in the same insert.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindAllByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_answers.position ASC")
		}).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) UserBests() ([]UserBest, error) {
	var bests []UserBest
	err := r.db.Model(&model.Attempt{}).
		Select("attempts.user_id AS user_id, users.username AS username, MAX(attempts.score) AS best_score").
		Joins("JOIN users ON users.id = attempts.user_id").
		Group("attempts.user_id, users.username").
		Order("attempts.user_id ASC").
		Scan(&bests).Error
	return bests, err
}
