package worker

import (
	"context"
	"log/slog"
	"time"

	"rinto/internal/pkg/clock"
	"rinto/internal/pkg/config"
	"rinto/internal/usecase/commands"
)

// Sweeper periodically moves confirmed bookings whose end time has
// passed to completed. The sweep is a single idempotent statement, so
// overlapping runs (or the internal sweep endpoint firing at the same
// time) are harmless.
type Sweeper struct {
	bookingCommands commands.BookingCommands
	clock           clock.Clock
	interval        time.Duration
	logger          *slog.Logger

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(bookingCommands commands.BookingCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		bookingCommands: bookingCommands,
		clock:           clk,
		interval:        cfg.Booking.SweepInterval,
		logger:          logger,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	moved, err := s.bookingCommands.CompleteElapsedBookings(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("booking sweep failed", "error", err.Error())
		return
	}
	if moved > 0 {
		s.logger.Info("booking sweep completed elapsed bookings", "count", moved)
	}
}
