package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charleschow/draw-progression/internal/core/league"
	"github.com/charleschow/draw-progression/internal/core/midseason"
	"github.com/charleschow/draw-progression/internal/core/progression"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledNotifierIsNoop(t *testing.T) {
	n := NewNotifier("")
	assert.False(t, n.Enabled())
	assert.NoError(t, n.RunSummary(context.Background(), "run", &league.Report{}))
}

func TestRunSummaryPostsEmbed(t *testing.T) {
	var got embedPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	progs := []league.ProgressionRecord{
		{Scenario: midseason.LowestDrawPct, Result: progression.Result{State: progression.Win, ProfitLoss: decimal.NewFromInt(2), MaxCapital: 2}},
		{Scenario: midseason.HighestWinPct, Result: progression.Result{State: progression.Loss, ProfitLoss: decimal.NewFromInt(-12), MaxCapital: 5}},
	}
	report := &league.Report{
		Leagues:      1,
		Progressions: progs,
		Summaries:    league.Summarize(progs),
		Warnings:     []league.Warning{{Kind: league.WarnMissingInput}, {Kind: league.WarnUndatedRows}},
	}

	n := NewNotifier(srv.URL)
	require.NoError(t, n.RunSummary(context.Background(), "0b7c1f5e-aaaa-bbbb-cccc-123456789abc", report))

	require.Len(t, got.Embeds, 1)
	e := got.Embeds[0]
	assert.Equal(t, "Draw progression run 0b7c1f5e", e.Title)
	assert.Equal(t, ColorYellow, e.Color)
	assert.Contains(t, e.Description, "2 progressions")
	assert.Contains(t, e.Description, "1 units skipped")
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "Lowest Draw %", e.Fields[0].Name)
	assert.Contains(t, e.Fields[3].Value, "P&L -12.00")
	assert.NotEmpty(t, e.Timestamp)
}

func TestSendEmbedRetriesOnceAfterRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0.05")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	start := time.Now()
	require.NoError(t, NewNotifier(srv.URL).SendEmbed(context.Background(), Embed{Title: "hi"}))
	assert.Equal(t, int32(2), calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSendEmbedGivesUpAfterSecondRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL).SendEmbed(context.Background(), Embed{Title: "hi"})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendEmbedRetryWaitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := NewNotifier(srv.URL).SendEmbed(ctx, Embed{Title: "hi"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL).SendEmbed(context.Background(), Embed{Title: "hi"})
	assert.ErrorContains(t, err, "status=400")
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, retryAfter("1.5", maxRetryWait))
	assert.Equal(t, defaultRetryWait, retryAfter("", maxRetryWait))
	assert.Equal(t, defaultRetryWait, retryAfter("soon", maxRetryWait))
	assert.Equal(t, maxRetryWait, retryAfter("3600", maxRetryWait))
}
