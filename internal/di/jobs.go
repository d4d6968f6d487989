package di

import (
	"fmt"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/database"
	"github.com/aristath/folio/internal/modules/market"
	"github.com/aristath/folio/internal/scheduler"
	"github.com/rs/zerolog"
)

const databaseMaintenanceSchedule = "0 0 * * * *" // hourly

// RegisterJobs creates the background jobs
func RegisterJobs(container *Container, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	return &JobInstances{
		QuoteWarmup: market.NewWarmupJob(container.MarketService, log),
		CacheCleanup: clientdata.NewCleanupJob(
			map[string]clientdata.Purger{"quotes": container.QuoteCache},
			clientdata.RetentionStale,
			log,
		),
		DatabaseMaintenance: database.NewMaintenanceJob(container.DB, log),
	}, nil
}

// ScheduleJobs adds the jobs to sched using the configured schedules.
// The quote warm-up job only runs when live pricing is enabled.
func ScheduleJobs(sched *scheduler.Scheduler, jobs *JobInstances, cfg *config.Config) error {
	if cfg.LivePricing {
		if err := sched.AddJob(cfg.QuoteRefreshSchedule, jobs.QuoteWarmup); err != nil {
			return err
		}
	}
	if err := sched.AddJob(cfg.CacheCleanupSchedule, jobs.CacheCleanup); err != nil {
		return err
	}
	return sched.AddJob(databaseMaintenanceSchedule, jobs.DatabaseMaintenance)
}
