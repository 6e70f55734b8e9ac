package report

import (
	"context"

	"authledger/internal/models"

	"go.uber.org/zap"
)

// StatsSource is satisfied by *ledger.Ledger
type StatsSource interface {
	Stats(ctx context.Context) (models.LoginAttemptStats, error)
}

// LedgerSummary logs the ledger statistics for operators
type LedgerSummary struct {
	source StatsSource
	log    *zap.Logger
}

func NewLedgerSummary(source StatsSource, log *zap.Logger) *LedgerSummary {
	return &LedgerSummary{source: source, log: log}
}

func (j *LedgerSummary) Name() string { return "ledger-summary" }

func (j *LedgerSummary) Run(ctx context.Context) error {
	stats, err := j.source.Stats(ctx)
	if err != nil {
		return err
	}

	j.log.Info("login attempt summary",
		zap.Int64("total_attempts", stats.TotalAttempts),
		zap.Int64("successful_attempts", stats.SuccessfulAttempts),
		zap.Int64("failed_attempts", stats.FailedAttempts),
		zap.Float64("success_rate", stats.SuccessRate),
		zap.Int64("today_attempts", stats.TodayAttempts),
		zap.Int64("unique_ips", stats.UniqueIPs),
		zap.Int64("unique_emails", stats.UniqueEmails),
	)
	return nil
}
