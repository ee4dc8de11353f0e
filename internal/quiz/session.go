package quiz

import (
	"math"
	"time"
)

// Ledger bounds: once the seen-ledger exceeds LedgerHighWater entries it is
// trimmed down to the most recent LedgerKeep.
const (
	LedgerHighWater = 100
	LedgerKeep      = 50
)

// ActiveQuiz is the in-progress quiz held for one user between start and
// submit. Questions are fixed for the session's lifetime; Answers is sparse
// and filled as the user answers.
type ActiveQuiz struct {
	Questions []Question     `json:"questions"`
	Answers   map[int]string `json:"answers"`
	Cursor    int            `json:"cursor"`
	StartedAt time.Time      `json:"started_at"`
}

func NewActiveQuiz(questions []Question, startedAt time.Time) *ActiveQuiz {
	return &ActiveQuiz{
		Questions: questions,
		Answers:   make(map[int]string),
		Cursor:    0,
		StartedAt: startedAt,
	}
}

// QuestionResult is the per-question line of a scored quiz.
type QuestionResult struct {
	Position     int    `json:"position"`
	Prompt       string `json:"prompt"`
	ChosenLabel  string `json:"chosen_label"`
	CorrectLabel string `json:"correct_label"`
	Correct      bool   `json:"correct"`
}

// Result is the scored outcome of one quiz. It is ephemeral: held only until
// the next quiz starts or the session is reset.
type Result struct {
	Questions      []QuestionResult `json:"questions"`
	CorrectCount   int              `json:"correct_count"`
	IncorrectCount int              `json:"incorrect_count"`
	TotalQuestions int              `json:"total_questions"`
	Score          int              `json:"score"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
	SubmittedAt    time.Time        `json:"submitted_at"`
}

// Score performs the percentage computation shared by submit and tests:
// round(100 * correct / total), 0 when total is 0.
func Score(correctCount, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(correctCount) / float64(totalQuestions) * 100))
}

// SeenLedger is the per-user recency window of already-served question IDs.
// Order is insertion order, oldest first.
type SeenLedger []string

// Contains reports whether id was already served.
func (l SeenLedger) Contains(id string) bool {
	for _, seen := range l {
		if seen == id {
			return true
		}
	}
	return false
}

// Merge appends the given IDs (skipping ones already present) and trims the
// ledger to the recency window when it grows past the high-water mark.
func (l SeenLedger) Merge(ids []string) SeenLedger {
	merged := l
	for _, id := range ids {
		if !merged.Contains(id) {
			merged = append(merged, id)
		}
	}
	if len(merged) > LedgerHighWater {
		merged = merged[len(merged)-LedgerKeep:]
	}
	return merged
}
