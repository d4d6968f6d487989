package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/database"
	"github.com/aristath/folio/internal/di"
	"github.com/aristath/folio/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandlers handles health, monitoring and job trigger endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	db          *database.DB
	quoteCache  clientdata.Purger
	jobs        map[string]scheduler.Job
	sched       *scheduler.Scheduler // optional; records manual runs and reports job status
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	db *database.DB,
	quoteCache clientdata.Purger,
	jobs *di.JobInstances,
	sched *scheduler.Scheduler,
	log zerolog.Logger,
) *SystemHandlers {
	byName := make(map[string]scheduler.Job)
	if jobs != nil {
		for _, job := range []scheduler.Job{jobs.QuoteWarmup, jobs.CacheCleanup, jobs.DatabaseMaintenance} {
			if job != nil {
				byName[job.Name()] = job
			}
		}
	}

	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		db:          db,
		quoteCache:  quoteCache,
		jobs:        byName,
		sched:       sched,
	}
}

// SystemStatusResponse represents the system status
type SystemStatusResponse struct {
	Status            string                `json:"status"` // "healthy" or "unhealthy"
	Uptime            string                `json:"uptime"`
	GoVersion         string                `json:"go_version"`
	Goroutines        int                   `json:"goroutines"`
	CPUPercent        float64               `json:"cpu_percent"`
	MemoryPercent     float64               `json:"memory_percent"`
	Database          *DatabaseStatus       `json:"database,omitempty"`
	QuoteCacheEntries int                   `json:"quote_cache_entries"`
	Jobs              []scheduler.JobStatus `json:"jobs,omitempty"`
}

// DatabaseStatus summarises the database file
type DatabaseStatus struct {
	SizeBytes     int64 `json:"size_bytes"`
	WALSizeBytes  int64 `json:"wal_size_bytes"`
	PageCount     int64 `json:"page_count"`
	PageSize      int64 `json:"page_size"`
	FreelistCount int64 `json:"freelist_count"`
}

// HandleHealth handles GET /health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		h.log.Error().Err(err).Msg("Health check failed")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:            "healthy",
		Uptime:            time.Since(h.startupTime).Round(time.Second).String(),
		GoVersion:         runtime.Version(),
		Goroutines:        runtime.NumGoroutine(),
		CPUPercent:        cpuPercent,
		MemoryPercent:     memPercent,
		QuoteCacheEntries: h.quoteCache.Len(),
	}
	if h.sched != nil {
		response.Jobs = h.sched.Statuses()
	}

	stats, err := h.db.GetStats()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get database stats")
		response.Status = "unhealthy"
	} else {
		response.Database = &DatabaseStatus{
			SizeBytes:     stats.SizeBytes,
			WALSizeBytes:  stats.WALSizeBytes,
			PageCount:     stats.PageCount,
			PageSize:      stats.PageSize,
			FreelistCount: stats.FreelistCount,
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleTriggerJob handles POST /api/system/jobs/{name}
// Runs a background job immediately and reports its outcome.
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	job, ok := h.jobs[name]
	if !ok {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job " + name})
		return
	}

	h.log.Info().Str("job", name).Msg("Manually triggering job")

	run := job.Run
	if h.sched != nil {
		run = func() error { return h.sched.RunNow(job) }
	}

	if err := run(); err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Job failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"job":    name,
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "success", "job": name})
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short sampling interval so the endpoint stays responsive
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
