package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"authledger/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type statsFunc func(ctx context.Context) (models.LoginAttemptStats, error)

func (f statsFunc) Stats(ctx context.Context) (models.LoginAttemptStats, error) { return f(ctx) }

func TestLedgerSummary_Run(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	job := NewLedgerSummary(statsFunc(func(context.Context) (models.LoginAttemptStats, error) {
		return models.LoginAttemptStats{TotalAttempts: 4, SuccessfulAttempts: 3, FailedAttempts: 1, SuccessRate: 75}, nil
	}), zap.New(core))

	require.NoError(t, job.Run(context.Background()))

	entries := logs.FilterMessage("login attempt summary").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, int64(4), fields["total_attempts"])
	require.Equal(t, 75.0, fields["success_rate"])
}

func TestLedgerSummary_Error(t *testing.T) {
	job := NewLedgerSummary(statsFunc(func(context.Context) (models.LoginAttemptStats, error) {
		return models.LoginAttemptStats{}, errors.New("db down")
	}), zap.NewNop())

	require.Error(t, job.Run(context.Background()))
}

func TestScheduler_Register(t *testing.T) {
	ctx := context.Background()
	job := NewLedgerSummary(statsFunc(func(context.Context) (models.LoginAttemptStats, error) {
		return models.LoginAttemptStats{}, nil
	}), zap.NewNop())

	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "Daily", schedule: "0 0 * * *"},
		{name: "Descriptor", schedule: "@hourly"},
		{name: "Empty", schedule: "", wantErr: true},
		{name: "Invalid", schedule: "every day", wantErr: true},
		{name: "Seconds Field", schedule: "0 0 0 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(zap.NewNop())
			err := s.Register(ctx, tt.schedule, job)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Error(t, s.Register(ctx, tt.schedule, job), "duplicate names are rejected")
		})
	}
}

func TestScheduler_RunNow(t *testing.T) {
	calls := 0
	job := NewLedgerSummary(statsFunc(func(context.Context) (models.LoginAttemptStats, error) {
		calls++
		return models.LoginAttemptStats{}, nil
	}), zap.NewNop())

	s := NewScheduler(zap.NewNop())
	require.NoError(t, s.Register(context.Background(), "@daily", job))

	require.NoError(t, s.RunNow(context.Background(), "ledger-summary"))
	require.Equal(t, 1, calls)
	require.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)
}

func TestScheduler_StartStops(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
