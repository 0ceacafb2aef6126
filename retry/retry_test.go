package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	ai "github.com/toolweave/toolweave"
	"github.com/stretchr/testify/assert"
)

// mockTransientError simulates a transient network error.
type mockTransientError struct {
	msg string
}

func (e *mockTransientError) Error() string   { return e.msg }
func (e *mockTransientError) Timeout() bool   { return true }
func (e *mockTransientError) Temporary() bool { return true }

var _ net.Error = (*mockTransientError)(nil)

func TestDoSuccess(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", &mockTransientError{msg: "connection timeout"}
		}
		return "recovered", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.Equal(t, 3, callCount)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	permErr := ai.NewPermanentError("invalid api key", 401, nil)

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", permErr
	})

	assert.ErrorIs(t, err, permErr)
	assert.Equal(t, 1, callCount)
}

func TestDoStopsOnUserInputError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", ai.NewUserInputError("bad request", 400, nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsAttempts(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (int, error) {
		callCount++
		return 0, &mockTransientError{msg: "still down"}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, callCount)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}
	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDoHonorsServerRetryDelay(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Second, // would be too slow without the hint
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}
	callCount := 0

	start := time.Now()
	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount == 1 {
			return "", ai.NewTransientErrorWithRetry("rate limited", 429, 5*time.Millisecond, nil)
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, callCount)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDisabledConfigSingleAttempt(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), Disabled(), func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDelayGrowsExponentially(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
	}

	assert.Equal(t, 100*time.Millisecond, cfg.Delay(0))
	assert.Equal(t, 200*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 400*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(-1))
}

func TestDelayCapsAtMax(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     4 * time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, 4*time.Second, cfg.Delay(10))
}

func TestDelayJitterStaysInRange(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
		Jitter:       0.1,
	}

	for i := 0; i < 50; i++ {
		d := cfg.Delay(0)
		assert.GreaterOrEqual(t, d, 90*time.Millisecond)
		assert.LessOrEqual(t, d, 110*time.Millisecond)
	}
}

func TestIsTransientClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"categorized transient", ai.NewTransientError("overloaded", 529, nil), true},
		{"categorized permanent", ai.NewPermanentError("forbidden", 403, nil), false},
		{"wrapped categorized", errors.Join(errors.New("outer"), ai.NewTransientError("inner", 503, nil)), true},
		{"net timeout", &mockTransientError{msg: "i/o timeout"}, true},
		{"googleapi 429", errors.New("googleapi: Error 429: quota exceeded"), true},
		{"googleapi 403", errors.New("googleapi: Error 403: forbidden"), false},
		{"message pattern", errors.New("read: connection reset by peer"), true},
		{"plain error", errors.New("no such tool"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}
