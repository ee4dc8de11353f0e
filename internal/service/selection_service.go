package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/quiz"
	"github.com/hoanglm/quizforge/internal/trivia"
)

// minOverfetch is the smallest duplicate-absorption margin added to the fetch
// size when the caller already has seen questions.
const minOverfetch = 10

// QuestionFetcher is the provider contract the selection engine depends on.
// *trivia.Client satisfies it.
type QuestionFetcher interface {
	Fetch(ctx context.Context, amount int, category string) ([]trivia.RawQuestion, error)
}

// SelectionService builds a de-duplicated question batch against a caller's
// seen-ledger. Merging the returned IDs back into the ledger is the caller's
// job.
type SelectionService interface {
	Select(ctx context.Context, seen quiz.SeenLedger, count int, category string) ([]quiz.Question, error)
}

type selectionService struct {
	fetcher QuestionFetcher
}

func NewSelectionService(fetcher QuestionFetcher) SelectionService {
	return &selectionService{fetcher: fetcher}
}

func (s *selectionService) Select(ctx context.Context, seen quiz.SeenLedger, count int, category string) ([]quiz.Question, error) {
	fetchSize := count
	if len(seen) > 0 {
		// Over-fetch to absorb expected duplicates; the margin grows with the
		// ledger but the provider caps a single batch.
		margin := len(seen)
		if margin < minOverfetch {
			margin = minOverfetch
		}
		fetchSize = count + margin
		if fetchSize > trivia.MaxBatchSize {
			fetchSize = trivia.MaxBatchSize
		}
	}

	raw, err := s.fetcher.Fetch(ctx, fetchSize, category)
	if err != nil {
		return nil, mapProviderError(err)
	}

	// One supplemental fetch when the provider came up short of both the fetch
	// size and the requested count. Its failure is not fatal; we keep what we
	// have.
	if len(raw) < fetchSize && len(raw) < count {
		shortfall := count - len(raw)
		extra, supErr := s.fetcher.Fetch(ctx, shortfall, category)
		if supErr != nil {
			log.Warn().Err(supErr).Int("shortfall", shortfall).Msg("Supplemental question fetch failed")
		} else {
			raw = appendUnseenPrompts(raw, extra)
		}
	}

	providerShort := len(raw) < fetchSize

	pool := dedupeByID(quiz.BuildAll(raw))

	filtered := make([]quiz.Question, 0, len(pool))
	for _, question := range pool {
		if !seen.Contains(question.ID) {
			filtered = append(filtered, question)
		}
	}

	// Selection precedence: provider-side scarcity beats novelty filtering,
	// and a fully-seen pool falls back to repeats rather than failing.
	switch {
	case providerShort:
		return capAt(filtered, count), nil
	case len(filtered) > 0:
		shuffleQuestions(filtered)
		return capAt(filtered, count), nil
	default:
		shuffleQuestions(pool)
		return capAt(pool, count), nil
	}
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, trivia.ErrNoResults), errors.Is(err, trivia.ErrInvalidParameter):
		return fmt.Errorf("%w: %v", quiz.ErrProviderNoResults, err)
	default:
		return fmt.Errorf("%w: %v", quiz.ErrProviderUnavailable, err)
	}
}

// appendUnseenPrompts merges the supplemental batch, skipping questions whose
// prompt already appeared in the first batch.
func appendUnseenPrompts(first, extra []trivia.RawQuestion) []trivia.RawQuestion {
	prompts := make(map[string]struct{}, len(first))
	for _, item := range first {
		prompts[item.Question] = struct{}{}
	}
	for _, item := range extra {
		if _, dup := prompts[item.Question]; dup {
			continue
		}
		prompts[item.Question] = struct{}{}
		first = append(first, item)
	}
	return first
}

func dedupeByID(questions []quiz.Question) []quiz.Question {
	ids := make(map[string]struct{}, len(questions))
	unique := questions[:0]
	for _, question := range questions {
		if _, dup := ids[question.ID]; dup {
			continue
		}
		ids[question.ID] = struct{}{}
		unique = append(unique, question)
	}
	return unique
}

func shuffleQuestions(questions []quiz.Question) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func capAt(questions []quiz.Question, count int) []quiz.Question {
	if len(questions) > count {
		return questions[:count]
	}
	return questions
}
