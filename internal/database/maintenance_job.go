package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// MaintenanceJob checkpoints the WAL file and runs a quick health check.
type MaintenanceJob struct {
	db  *DB
	log zerolog.Logger
}

// NewMaintenanceJob creates a new database maintenance job.
func NewMaintenanceJob(db *DB, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		db:  db,
		log: log.With().Str("job", "database_maintenance").Logger(),
	}
}

// Run executes the maintenance job.
func (j *MaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.db.QuickCheck(ctx); err != nil {
		j.log.Error().Err(err).Str("database", j.db.Name()).Msg("Database health check failed")
		return err
	}

	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		j.log.Error().Err(err).Str("database", j.db.Name()).Msg("WAL checkpoint failed")
		return err
	}

	if stats, err := j.db.GetStats(); err == nil {
		j.log.Debug().
			Str("database", j.db.Name()).
			Int64("size_bytes", stats.SizeBytes).
			Int64("wal_size_bytes", stats.WALSizeBytes).
			Msg("Database maintenance completed")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *MaintenanceJob) Name() string {
	return "database_maintenance"
}
