package session

import (
	"context"

	"github.com/hoanglm/quizforge/internal/quiz"
)

// State is everything the server holds for one authenticated caller, keyed by
// the client-presented token. It is a value object: core operations take the
// current State and produce a successor, the store only moves it in and out.
type State struct {
	UserID     uint             `json:"user_id"`
	Username   string           `json:"username"`
	Quiz       *quiz.ActiveQuiz `json:"quiz,omitempty"`
	Seen       quiz.SeenLedger  `json:"seen,omitempty"`
	LastResult *quiz.Result     `json:"last_result,omitempty"`
}

// Store keeps session state per token. Implementations: in-memory map and
// Redis.
type Store interface {
	// Get returns the state for token; ok is false when the token is unknown
	// or expired.
	Get(ctx context.Context, token string) (State, bool, error)
	Set(ctx context.Context, token string, state State) error
	Destroy(ctx context.Context, token string) error
}
