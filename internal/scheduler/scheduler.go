package scheduler

import (
	"context"
	"time"

	"wms-backend/internal/database"
	"wms-backend/internal/manufacturing"

	"github.com/rs/zerolog/log"
)

// Run scans for overdue orders on a fixed interval and folds their unmet
// shortfall into manufacturing tasks. Blocks until ctx is cancelled; start it
// in its own goroutine.
func Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("overdue scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("overdue scheduler stopped")
			return
		case <-ticker.C:
			n, err := manufacturing.GenerateOverdueTasks(database.DB)
			if err != nil {
				log.Error().Err(err).Msg("overdue scan failed")
				continue
			}
			if n > 0 {
				log.Info().Int("tasks", n).Msg("overdue scan completed")
			}
		}
	}
}
