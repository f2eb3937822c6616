package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shekokarmahesh/contract-intel/pkg/logger"
	"github.com/shekokarmahesh/contract-intel/service"
)

// StartCleanup schedules removal of failed contracts older than
// retentionDays. The schedule uses the standard 5-field cron format.
func StartCleanup(store service.ContractStore, retentionDays int, schedule string) (*cron.Cron, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := store.DeleteFailedBefore(ctx, cutoff)
		if err != nil {
			logger.Error(ctx, "failed contract cleanup error", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info(ctx, "cleaned up failed contracts",
				"deleted", deleted, "older_than", cutoff.Format(time.RFC3339))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	c.Start()
	return c, nil
}
