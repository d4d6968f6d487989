package clientdata

import "time"

// Freshness windows for cached provider responses.
const (
	TTLQuote = 5 * time.Minute // Live quotes and the crypto catalog

	// RetentionStale is how long an expired entry is kept around as a
	// fallback when the provider is unreachable.
	RetentionStale = 24 * time.Hour
)
