package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoanglm/quizforge/internal/quiz"
	"github.com/hoanglm/quizforge/internal/trivia"
)

type fetchCall struct {
	amount   int
	category string
}

type fetchReply struct {
	raw []trivia.RawQuestion
	err error
}

type fakeFetcher struct {
	calls   []fetchCall
	replies []fetchReply
}

func (f *fakeFetcher) Fetch(_ context.Context, amount int, category string) ([]trivia.RawQuestion, error) {
	f.calls = append(f.calls, fetchCall{amount: amount, category: category})
	if len(f.replies) == 0 {
		return nil, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.raw, reply.err
}

func rawBatch(prefix string, n int) []trivia.RawQuestion {
	batch := make([]trivia.RawQuestion, n)
	for i := range batch {
		batch[i] = trivia.RawQuestion{
			Question:         fmt.Sprintf("%s question %d", prefix, i),
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"w1", "w2", "w3"},
		}
	}
	return batch
}

func idsOf(questions []quiz.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestSelectFreshLedgerFetchesExactly(t *testing.T) {
	fetcher := &fakeFetcher{replies: []fetchReply{{raw: rawBatch("fresh", 10)}}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), nil, 10, "any")
	require.NoError(t, err)
	require.Len(t, questions, 10)

	// Empty ledger: no over-fetch, no supplemental call.
	require.Len(t, fetcher.calls, 1)
	require.Equal(t, 10, fetcher.calls[0].amount)
	require.Equal(t, "any", fetcher.calls[0].category)
}

func TestSelectOverfetchesAgainstLedger(t *testing.T) {
	seen := quiz.SeenLedger{"q_aaa", "q_bbb", "q_ccc"}
	fetcher := &fakeFetcher{replies: []fetchReply{{raw: rawBatch("over", 20)}}}
	engine := NewSelectionService(fetcher)

	_, err := engine.Select(context.Background(), seen, 10, "")
	require.NoError(t, err)
	// Margin is max(seenCount, 10) = 10.
	require.Equal(t, 20, fetcher.calls[0].amount)
}

func TestSelectOverfetchCappedAtProviderMax(t *testing.T) {
	seen := make(quiz.SeenLedger, 60)
	for i := range seen {
		seen[i] = fmt.Sprintf("q_%03d", i)
	}
	fetcher := &fakeFetcher{replies: []fetchReply{{raw: rawBatch("cap", 50)}}}
	engine := NewSelectionService(fetcher)

	_, err := engine.Select(context.Background(), seen, 10, "")
	require.NoError(t, err)
	require.Equal(t, trivia.MaxBatchSize, fetcher.calls[0].amount)
}

func TestSelectFiltersSeenQuestions(t *testing.T) {
	raw := rawBatch("filter", 20)
	seen := quiz.SeenLedger{
		quiz.QuestionID(raw[0].Question),
		quiz.QuestionID(raw[1].Question),
		quiz.QuestionID(raw[2].Question),
	}

	fetcher := &fakeFetcher{replies: []fetchReply{{raw: raw}}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), seen, 10, "")
	require.NoError(t, err)
	require.Len(t, questions, 10)
	for _, id := range idsOf(questions) {
		require.False(t, seen.Contains(id), "seen question %s leaked into batch", id)
	}
}

func TestSelectNeverReturnsDuplicateIDs(t *testing.T) {
	raw := rawBatch("dup", 10)
	// Same prompt twice collapses to one ID.
	raw = append(raw, raw[0])

	fetcher := &fakeFetcher{replies: []fetchReply{{raw: raw}}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), nil, 10, "")
	require.NoError(t, err)

	unique := make(map[string]struct{})
	for _, id := range idsOf(questions) {
		_, dup := unique[id]
		require.False(t, dup, "duplicate id %s", id)
		unique[id] = struct{}{}
	}
}

func TestSelectShortProviderSupplyIsNotAnError(t *testing.T) {
	fetcher := &fakeFetcher{replies: []fetchReply{
		{raw: rawBatch("thin", 3)},
		{raw: nil}, // supplemental also comes back empty
	}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), nil, 5, "")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	require.Len(t, fetcher.calls, 2)
	require.Equal(t, 2, fetcher.calls[1].amount) // shortfall only
}

func TestSelectSupplementalFetchDeduplicatesByPrompt(t *testing.T) {
	first := rawBatch("supp", 3)
	extra := []trivia.RawQuestion{
		first[0], // duplicate prompt, must be dropped
		{Question: "supp question 99", CorrectAnswer: "right", IncorrectAnswers: []string{"w1", "w2", "w3"}},
	}
	fetcher := &fakeFetcher{replies: []fetchReply{{raw: first}, {raw: extra}}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), nil, 5, "")
	require.NoError(t, err)
	require.Len(t, questions, 4)
}

func TestSelectSupplementalFailureIsNonFatal(t *testing.T) {
	fetcher := &fakeFetcher{replies: []fetchReply{
		{raw: rawBatch("frail", 3)},
		{err: trivia.ErrUnavailable},
	}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), nil, 5, "")
	require.NoError(t, err)
	require.Len(t, questions, 3)
}

func TestSelectFallsBackWhenEverythingSeen(t *testing.T) {
	raw := rawBatch("seen", 15)
	seen := make(quiz.SeenLedger, 0, 15)
	for _, item := range raw {
		seen = append(seen, quiz.QuestionID(item.Question))
	}
	// fetchSize = 5 + max(15, 10) = 20; return 20 raw rows collapsing to the
	// 15 known prompts so the provider does not look short.
	raw = append(raw, raw[0], raw[1], raw[2], raw[3], raw[4])

	fetcher := &fakeFetcher{replies: []fetchReply{{raw: raw}}}
	engine := NewSelectionService(fetcher)

	questions, err := engine.Select(context.Background(), seen, 5, "")
	require.NoError(t, err)
	// Novelty is exhausted: repeats are allowed rather than failing.
	require.Len(t, questions, 5)
	for _, id := range idsOf(questions) {
		require.True(t, seen.Contains(id))
	}
}

func TestSelectMapsProviderErrors(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		wantErr     error
	}{
		{name: "no results", providerErr: trivia.ErrNoResults, wantErr: quiz.ErrProviderNoResults},
		{name: "invalid parameter", providerErr: trivia.ErrInvalidParameter, wantErr: quiz.ErrProviderNoResults},
		{name: "timeout", providerErr: trivia.ErrUnavailable, wantErr: quiz.ErrProviderUnavailable},
		{name: "network", providerErr: errors.New("connection refused"), wantErr: quiz.ErrProviderUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeFetcher{replies: []fetchReply{{err: tc.providerErr}}}
			engine := NewSelectionService(fetcher)

			_, err := engine.Select(context.Background(), nil, 5, "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
