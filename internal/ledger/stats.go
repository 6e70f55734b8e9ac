package ledger

import (
	"context"
	"math"
	"time"

	"authledger/internal/models"
)

// SuccessRate returns successful/total as a percentage rounded to two
// decimals, or 0 when there are no attempts.
func SuccessRate(successful, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(successful) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Stats recomputes the ledger statistics from the full history
func (l *Ledger) Stats(ctx context.Context) (models.LoginAttemptStats, error) {
	counts, err := l.repo.Counts(ctx, StartOfDay(l.now()))
	if err != nil {
		return models.LoginAttemptStats{}, err
	}

	return models.LoginAttemptStats{
		TotalAttempts:      counts.Total,
		SuccessfulAttempts: counts.Successful,
		FailedAttempts:     counts.Failed,
		SuccessRate:        SuccessRate(counts.Successful, counts.Total),
		TodayAttempts:      counts.Today,
		UniqueIPs:          counts.UniqueIPs,
		UniqueEmails:       counts.UniqueEmails,
	}, nil
}
