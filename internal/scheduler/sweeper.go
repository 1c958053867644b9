package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
	"github.com/robfig/cron/v3"
)

// ExpiringStore is satisfied by *otp.Store.
type ExpiringStore interface {
	Sweep(now time.Time) int
	Len() int
}

// Sweeper periodically drops expired entries from the code stores. Lookups
// already treat expired entries as absent; the sweep only reclaims memory.
type Sweeper struct {
	stores   map[string]ExpiringStore
	schedule cron.Schedule
	spec     string
	logger   *slog.Logger
	now      func() time.Time
	lastRun  atomic.Int64
}

func NewSweeper(spec string, stores map[string]ExpiringStore, logger *slog.Logger) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", spec, err)
	}
	return &Sweeper{
		stores:   stores,
		schedule: schedule,
		spec:     spec,
		logger:   logger.With("component", "sweeper"),
		now:      time.Now,
	}, nil
}

// Start runs sweeps on the schedule until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	c := cron.New()
	c.Schedule(s.schedule, cron.FuncJob(func() { s.SweepOnce(s.now()) }))
	c.Start()
	s.logger.Info("sweeper started", "schedule", s.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("sweeper: shut down")
}

// SweepOnce sweeps every store and returns how many entries were removed.
func (s *Sweeper) SweepOnce(now time.Time) int {
	start := time.Now()
	var total int
	for name, store := range s.stores {
		removed := store.Sweep(now)
		total += removed
		metrics.OTPSweptTotal.WithLabelValues(name).Add(float64(removed))
		metrics.OTPStoreEntries.WithLabelValues(name).Set(float64(store.Len()))
		if removed > 0 {
			s.logger.Debug("swept expired codes", "store", name, "removed", removed)
		}
	}
	metrics.SweepCycleDuration.Observe(time.Since(start).Seconds())
	s.lastRun.Store(now.UnixNano())
	return total
}

// Ping reports an error when no sweep has run for three schedule periods.
// It is used as a readiness check.
func (s *Sweeper) Ping(_ context.Context) error {
	last := s.lastRun.Load()
	if last == 0 {
		return nil
	}
	lastRun := time.Unix(0, last)
	next := s.schedule.Next(lastRun)
	period := next.Sub(lastRun)
	if s.now().Sub(lastRun) > 3*period {
		return errors.New("sweeper stalled")
	}
	return nil
}
