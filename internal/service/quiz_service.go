package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/model"
	"github.com/hoanglm/quizforge/internal/quiz"
	"github.com/hoanglm/quizforge/internal/repository"
	"github.com/hoanglm/quizforge/internal/session"
)

// Quiz size bounds; out-of-range start requests clamp instead of failing.
const (
	MinQuizSize = 1
	MaxQuizSize = 10
)

// QuizService is the quiz session state machine. It is stateless between
// calls: every operation takes the caller's current session state and returns
// the successor state, which the transport layer writes back to the session
// store. Two racing requests for one user are last-write-wins; serialization
// is the transport's concern.
type QuizService interface {
	// StartQuiz abandons any in-progress quiz and builds a fresh one.
	// On provider failure the state is returned unchanged and no session
	// is created.
	StartQuiz(ctx context.Context, state session.State, count int, category string) (session.State, error)
	// SubmitAnswer records one answer, last-write-wins per position.
	SubmitAnswer(state session.State, position int, label string) (session.State, error)
	// SubmitQuiz scores the active session, persists an attempt and clears
	// the session. Persistence failure is logged, never surfaced.
	SubmitQuiz(state session.State) (session.State, *quiz.Result, error)
	// LastResult re-reads the most recent scored result.
	LastResult(state session.State) (*quiz.Result, error)
	// Reset clears ledger, active session and last result.
	Reset(state session.State) session.State
}

type quizService struct {
	selection SelectionService
	attempts  repository.AttemptRepository
	now       func() time.Time
}

func NewQuizService(selection SelectionService, attempts repository.AttemptRepository) QuizService {
	return &quizService{selection: selection, attempts: attempts, now: time.Now}
}

// NewQuizServiceWithClock is test-only, for deterministic timestamps.
func NewQuizServiceWithClock(selection SelectionService, attempts repository.AttemptRepository, now func() time.Time) QuizService {
	return &quizService{selection: selection, attempts: attempts, now: now}
}

func (s *quizService) StartQuiz(ctx context.Context, state session.State, count int, category string) (session.State, error) {
	if count < MinQuizSize {
		count = MinQuizSize
	}
	if count > MaxQuizSize {
		count = MaxQuizSize
	}

	questions, err := s.selection.Select(ctx, state.Seen, count, category)
	if err != nil {
		return state, err
	}

	ids := make([]string, len(questions))
	for idx, question := range questions {
		ids[idx] = question.ID
	}
	state.Seen = state.Seen.Merge(ids)
	state.Quiz = quiz.NewActiveQuiz(questions, s.now())
	state.LastResult = nil

	if len(questions) < count {
		log.Info().
			Uint("userID", state.UserID).
			Int("requested", count).
			Int("delivered", len(questions)).
			Msg("Quiz started short of requested count")
	}
	return state, nil
}

func (s *quizService) SubmitAnswer(state session.State, position int, label string) (session.State, error) {
	if state.Quiz == nil {
		return state, quiz.ErrNoActiveSession
	}
	if position < 0 || position >= len(state.Quiz.Questions) {
		return state, quiz.ErrInvalidIndex
	}

	// A label that is not a valid option letter stores as "", i.e. unanswered.
	state.Quiz.Answers[position] = quiz.NormalizeLabel(label)
	state.Quiz.Cursor = position
	return state, nil
}

func (s *quizService) SubmitQuiz(state session.State) (session.State, *quiz.Result, error) {
	if state.Quiz == nil {
		return state, nil, quiz.ErrNoActiveSession
	}

	now := s.now()
	active := state.Quiz

	results := make([]quiz.QuestionResult, len(active.Questions))
	correctCount := 0
	for idx, question := range active.Questions {
		chosen := active.Answers[idx] // absent answer is "", never matches
		correct := chosen != "" && chosen == question.CorrectLabel
		if correct {
			correctCount++
		}
		results[idx] = quiz.QuestionResult{
			Position:     idx,
			Prompt:       question.Prompt,
			ChosenLabel:  chosen,
			CorrectLabel: question.CorrectLabel,
			Correct:      correct,
		}
	}

	total := len(active.Questions)
	result := &quiz.Result{
		Questions:      results,
		CorrectCount:   correctCount,
		IncorrectCount: total - correctCount,
		TotalQuestions: total,
		Score:          quiz.Score(correctCount, total),
		ElapsedSeconds: int(math.Round(now.Sub(active.StartedAt).Seconds())),
		SubmittedAt:    now,
	}

	state.LastResult = result
	state.Quiz = nil

	s.recordAttempt(state.UserID, result)
	return state, result, nil
}

// recordAttempt durably appends the attempt. A failed write must not block
// returning the score, so it is only logged for later reconciliation.
func (s *quizService) recordAttempt(userID uint, result *quiz.Result) {
	answers := make([]model.AttemptAnswer, len(result.Questions))
	for idx, question := range result.Questions {
		answers[idx] = model.AttemptAnswer{
			Position:     question.Position,
			Prompt:       question.Prompt,
			ChosenLabel:  question.ChosenLabel,
			CorrectLabel: question.CorrectLabel,
			Correct:      question.Correct,
		}
	}

	attempt := model.Attempt{
		UserID:         userID,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		IncorrectCount: result.IncorrectCount,
		TotalQuestions: result.TotalQuestions,
		ElapsedSeconds: result.ElapsedSeconds,
		SubmittedAt:    result.SubmittedAt,
		Answers:        answers,
	}

	if err := s.attempts.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("userID", userID).Int("score", result.Score).
			Msg("Failed to persist quiz attempt; score already returned to caller")
	}
}

func (s *quizService) LastResult(state session.State) (*quiz.Result, error) {
	if state.LastResult == nil {
		return nil, quiz.ErrNoResult
	}
	return state.LastResult, nil
}

func (s *quizService) Reset(state session.State) session.State {
	state.Quiz = nil
	state.Seen = nil
	state.LastResult = nil
	return state
}
