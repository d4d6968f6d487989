package domain

import "context"

// QuoteProvider fetches market quotes from an external source.
// Implementations must honour ctx cancellation so callers can bound the wait.
type QuoteProvider interface {
	// Markets returns the top perPage coins by market cap.
	Markets(ctx context.Context, perPage int) ([]Quote, error)
}
