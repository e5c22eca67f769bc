package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charleschow/draw-progression/internal/telemetry"
)

// ErrRateLimited is returned when the webhook still answers 429 after the
// single Retry-After wait.
var ErrRateLimited = errors.New("discord: rate limited")

const (
	defaultRetryWait = time.Second
	maxRetryWait     = 10 * time.Second
)

// Notifier posts run summaries to a Discord webhook. A zero URL disables it.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
	maxWait    time.Duration
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxWait:    maxRetryWait,
	}
}

func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedPayload struct {
	Embeds []Embed `json:"embeds"`
}

// SendEmbed posts one embed, stamping it with the current time when unset.
// A 429 is retried once after the Retry-After delay.
func (n *Notifier) SendEmbed(ctx context.Context, embed Embed) error {
	if !n.Enabled() {
		return nil
	}
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(embedPayload{Embeds: []Embed{embed}})
	if err != nil {
		return fmt.Errorf("marshal discord embed: %w", err)
	}

	wait, err := n.post(ctx, body)
	if !errors.Is(err, ErrRateLimited) {
		return err
	}
	telemetry.Warnf("discord: rate limited, retrying in %s", wait)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	_, err = n.post(ctx, body)
	return err
}

// post sends body once. On 429 it returns ErrRateLimited with the wait the
// server asked for, capped at maxWait.
func (n *Notifier) post(ctx context.Context, body []byte) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("discord webhook: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return retryAfter(resp.Header.Get("Retry-After"), n.maxWait), ErrRateLimited
	case resp.StatusCode >= 300:
		return 0, fmt.Errorf("discord webhook: status=%d", resp.StatusCode)
	}
	return 0, nil
}

// retryAfter parses a Retry-After value in (possibly fractional) seconds.
func retryAfter(header string, limit time.Duration) time.Duration {
	wait := defaultRetryWait
	if secs, err := strconv.ParseFloat(header, 64); err == nil && secs >= 0 {
		wait = time.Duration(secs * float64(time.Second))
	}
	return min(wait, limit)
}
