package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type flakyChecker struct {
	failFor int
	calls   int
}

func (f *flakyChecker) Health(context.Context) error {
	f.calls++
	if f.calls <= f.failFor {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitHealthy_RecoversAfterFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	hc := &flakyChecker{failFor: 2}

	if err := WaitHealthy(context.Background(), hc, 5, time.Millisecond, zap.New(core)); err != nil {
		t.Fatalf("WaitHealthy: %v", err)
	}
	if hc.calls != 3 {
		t.Fatalf("calls = %d, want 3", hc.calls)
	}
	if got := logs.FilterMessage("driver service unhealthy").Len(); got != 2 {
		t.Fatalf("unhealthy logs = %d, want 2", got)
	}
}

func TestWaitHealthy_GivesUp(t *testing.T) {
	hc := &flakyChecker{failFor: 10}

	err := WaitHealthy(context.Background(), hc, 3, time.Millisecond, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if hc.calls != 3 {
		t.Fatalf("calls = %d, want 3", hc.calls)
	}
}

func TestWaitHealthy_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hc := &flakyChecker{failFor: 10}

	err := WaitHealthy(ctx, hc, 5, time.Hour, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if hc.calls != 1 {
		t.Fatalf("calls = %d, want 1", hc.calls)
	}
}
