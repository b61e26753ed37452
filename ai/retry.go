package ai

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// ErrRateLimited marks a failure that is worth retrying after a pause.
var ErrRateLimited = errors.New("rate limit exceeded (429)")

// Retrier retries rate-limited calls with exponential backoff.
type Retrier struct {
	Retries   int
	BaseDelay time.Duration
	// Sleep waits between attempts; replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetrier waits 1s, 2s, 4s between attempts.
func DefaultRetrier() Retrier {
	return Retrier{Retries: 3, BaseDelay: time.Second, Sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn, retrying only rate-limit errors. Any other error is returned
// straight away.
func Do[T any](ctx context.Context, r Retrier, fn func() (T, error)) (T, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	delay := r.BaseDelay

	for attempt := 0; ; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		if !IsRateLimit(err) || attempt >= r.Retries {
			return out, err
		}
		logrus.WithFields(logrus.Fields{"attempt": attempt + 1, "delay": delay}).Warn("AI rate limited, backing off")
		if serr := sleep(ctx, delay); serr != nil {
			return out, serr
		}
		delay *= 2
	}
}

// IsRateLimit reports whether err came from quota exhaustion.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "quotaExceeded")
}

// FriendlyError turns a gateway failure into a short message for people.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if IsRateLimit(err) {
		return "AI request volume has exceeded the current quota. This is a temporary limit."
	}
	if strings.Contains(msg, "Requested entity was not found") || strings.Contains(msg, "404") || errors.Is(err, ErrNotConfigured) {
		return "The requested intelligence model is currently unavailable."
	}
	return "Strategic Intelligence Error: " + truncate(msg, 100)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
