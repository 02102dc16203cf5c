package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically expires stale pending deposits.
type Sweeper struct {
	deposits *DepositService
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(deposits *DepositService, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Sweeper{deposits: deposits, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Start it in a
// goroutine from main. One sweep runs immediately so a restart doesn't leave
// stale links pending for a full interval.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	n, err := s.deposits.SweepExpired()
	if err != nil {
		s.log.Error("deposit expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired stale deposits", zap.Int64("count", n))
	}
}
