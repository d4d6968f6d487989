package market

import (
	"context"

	"github.com/rs/zerolog"
)

// WarmupJob keeps the crypto quote cache populated so requests rarely wait on the provider
type WarmupJob struct {
	service *Service
	log     zerolog.Logger
}

// NewWarmupJob creates a new quote warm-up job
func NewWarmupJob(service *Service, log zerolog.Logger) *WarmupJob {
	return &WarmupJob{
		service: service,
		log:     log.With().Str("job", "market_quote_warmup").Logger(),
	}
}

// Run refreshes the cached crypto quotes
func (j *WarmupJob) Run() error {
	if err := j.service.Refresh(context.Background()); err != nil {
		j.log.Warn().Err(err).Msg("Quote warm-up failed, cached quotes left in place")
		return err
	}
	return nil
}

// Name returns the job name for scheduling and logging
func (j *WarmupJob) Name() string {
	return "market_quote_warmup"
}
