package trivia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestFetchDecodesBatch(t *testing.T) {
	var gotQuery map[string][]string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"response_code": 0,
			"results": [{
				"type": "multiple",
				"difficulty": "easy",
				"category": "Science",
				"question": "What is 2 &plus; 2?",
				"correct_answer": "4",
				"incorrect_answers": ["3", "5", "6"]
			}]
		}`))
	})

	client := NewClient(server.URL, time.Second)
	raw, err := client.Fetch(context.Background(), 1, "17")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	require.Equal(t, "4", raw[0].CorrectAnswer)
	require.Len(t, raw[0].IncorrectAnswers, 3)

	require.Equal(t, []string{"1"}, gotQuery["amount"])
	require.Equal(t, []string{"multiple"}, gotQuery["type"])
	require.Equal(t, []string{"17"}, gotQuery["category"])
}

func TestFetchOmitsCategoryForAny(t *testing.T) {
	var gotCategory string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		w.Write([]byte(`{"response_code":0,"results":[]}`))
	})

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), 5, "any")
	require.NoError(t, err)
	require.Empty(t, gotCategory)
}

func TestFetchClampsAmountToProviderMax(t *testing.T) {
	var gotAmount string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAmount = r.URL.Query().Get("amount")
		w.Write([]byte(`{"response_code":0,"results":[]}`))
	})

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), 500, "")
	require.NoError(t, err)
	require.Equal(t, "50", gotAmount)
}

func TestFetchResponseCodes(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantErr error
	}{
		{name: "no results", code: 1, wantErr: ErrNoResults},
		{name: "invalid parameter", code: 2, wantErr: ErrInvalidParameter},
		{name: "rate limited", code: 5, wantErr: ErrUnavailable},
		{name: "unknown code", code: 9, wantErr: ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"response_code":` + strconv.Itoa(tc.code) + `,"results":[]}`))
			})

			client := NewClient(server.URL, time.Second)
			_, err := client.Fetch(context.Background(), 5, "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFetchNonOKStatusIsUnavailable(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), 5, "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchTimeoutIsUnavailable(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})

	client := NewClient(server.URL, 50*time.Millisecond)
	_, err := client.Fetch(context.Background(), 5, "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchBadJSONIsUnavailable(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), 5, "")
	require.ErrorIs(t, err, ErrUnavailable)
}
