package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), "test", fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("transient %d", calls)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestDoReturnsLastErrorUnchanged(t *testing.T) {
	sentinel := errors.New("vendor down")
	calls := 0
	_, err := Do(context.Background(), "test", fastConfig(3), func() (int, error) {
		calls++
		return 0, sentinel
	})
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("error %v does not wrap the original", err)
	}
}

func TestDoNonRetryableStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	cfg := fastConfig(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, sentinel) }

	calls := 0
	_, err := Do(context.Background(), "test", cfg, func() (int, error) {
		calls++
		return 0, sentinel
	})
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("error %v does not wrap the original", err)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig(10)
	cfg.InitialWait = 50 * time.Millisecond

	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, "test", cfg, func() (int, error) {
			calls++
			return 0, errors.New("always fails")
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
	if calls > 2 {
		t.Errorf("op called %d times after early cancel", calls)
	}
}

func TestDoSingleAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), "test", fastConfig(1), func() (bool, error) {
		calls++
		return true, nil
	})
	if err != nil || !got {
		t.Fatalf("got (%v, %v), want (true, nil)", got, err)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
}
