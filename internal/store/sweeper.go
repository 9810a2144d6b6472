package store

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// RunSweeper removes idle sessions from st every interval until ctx is done.
func RunSweeper(ctx context.Context, st Store, clock quartz.Clock, interval, maxIdle time.Duration, logger *log.Logger) error {
	logger.Info("Session sweeper started", "interval", interval, "maxIdle", maxIdle)

	w := clock.TickerFunc(ctx, interval, func() error {
		removed, err := st.Sweep(maxIdle)
		if err != nil {
			logger.Error("Failed to sweep idle sessions", "error", err)
			return nil
		}
		if removed > 0 {
			logger.Info("Swept idle sessions", "removed", removed)
		}
		return nil
	}, "sweeper")

	err := w.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
