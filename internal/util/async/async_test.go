package async

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRun_Success(t *testing.T) {
	var count atomic.Int32

	tasks := []Task{
		{Name: "subnet-a", Func: func(_ context.Context) error { count.Add(1); return nil }},
		{Name: "subnet-b", Func: func(_ context.Context) error { count.Add(1); return nil }},
		{Name: "subnet-c", Func: func(_ context.Context) error { count.Add(1); return nil }},
	}

	if err := Run(context.Background(), tasks); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if count.Load() != 3 {
		t.Errorf("expected 3 tasks to run, got %d", count.Load())
	}
}

func TestRun_Empty(t *testing.T) {
	if err := Run(context.Background(), nil); err != nil {
		t.Errorf("expected no error for empty tasks, got: %v", err)
	}
}

func TestRun_CollectsAllErrors(t *testing.T) {
	err1 := errors.New("zone a down")
	err2 := errors.New("zone c down")

	tasks := []Task{
		{Name: "subnet-a", Func: func(_ context.Context) error { return err1 }},
		{Name: "subnet-b", Func: func(_ context.Context) error { return nil }},
		{Name: "subnet-c", Func: func(_ context.Context) error { return err2 }},
	}

	err := Run(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, err1) || !errors.Is(err, err2) {
		t.Errorf("joined error should contain both failures, got: %v", err)
	}
	if !strings.Contains(err.Error(), "subnet-a") || !strings.Contains(err.Error(), "subnet-c") {
		t.Errorf("error should name the failed tasks, got: %v", err)
	}
}

func TestRun_AllTasksCompleteDespiteFailure(t *testing.T) {
	var completed atomic.Int32

	tasks := []Task{
		{Name: "fast-fail", Func: func(_ context.Context) error { return errors.New("boom") }},
		{Name: "slow-ok", Func: func(_ context.Context) error { completed.Add(1); return nil }},
	}

	_ = Run(context.Background(), tasks)
	if completed.Load() != 1 {
		t.Errorf("all tasks should complete even when one fails, completed=%d", completed.Load())
	}
}
