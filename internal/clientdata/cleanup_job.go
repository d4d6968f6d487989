package clientdata

import (
	"time"

	"github.com/rs/zerolog"
)

// Purger is implemented by caches that can drop old entries.
type Purger interface {
	Purge(maxAge time.Duration) int
	Len() int
}

// CleanupJob removes entries that are too old to serve even as a stale fallback.
type CleanupJob struct {
	caches map[string]Purger
	log    zerolog.Logger
	maxAge time.Duration
}

// NewCleanupJob creates a new cache cleanup job over the named caches.
func NewCleanupJob(caches map[string]Purger, maxAge time.Duration, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		caches: caches,
		maxAge: maxAge,
		log:    log.With().Str("job", "quote_cache_cleanup").Logger(),
	}
}

// Run executes the cleanup job, purging every registered cache.
func (j *CleanupJob) Run() error {
	var totalDeleted int
	for name, cache := range j.caches {
		count := cache.Purge(j.maxAge)
		if count > 0 {
			j.log.Info().
				Str("cache", name).
				Int("deleted", count).
				Int("remaining", cache.Len()).
				Msg("Cleaned up expired cache entries")
			totalDeleted += count
		}
	}

	if totalDeleted > 0 {
		j.log.Info().
			Int("total_deleted", totalDeleted).
			Msg("Quote cache cleanup completed")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "quote_cache_cleanup"
}
