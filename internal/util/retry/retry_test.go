package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("throttled")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond))

	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	wrapped := errors.New("still broken")
	err := Do(context.Background(), func() error {
		return wrapped
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond))

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, wrapped) {
		t.Errorf("expected wrapped original error, got: %v", err)
	}
}

func TestDo_FatalNotRetried(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return Fatal(errors.New("validation refused"))
	}, WithInitialDelay(time.Millisecond))

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("fatal errors must not be retried, got %d attempts", attempts)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func() error {
		return errors.New("transient")
	}, WithInitialDelay(50*time.Millisecond))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if IsFatal(errors.New("plain")) {
		t.Error("plain error should not be fatal")
	}
	if !IsFatal(Fatal(errors.New("x"))) {
		t.Error("Fatal-wrapped error should be fatal")
	}
	if !IsFatal(errors.Join(errors.New("a"), Fatal(errors.New("b")))) {
		t.Error("fatal error inside a joined chain should be detected")
	}
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should be nil")
	}
}
