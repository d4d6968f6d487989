package testing

import (
	"context"
	"sync"

	"github.com/aristath/folio/internal/domain"
)

// MockQuoteProvider is a mock implementation of domain.QuoteProvider for testing
type MockQuoteProvider struct {
	mu     sync.RWMutex
	quotes []domain.Quote
	err    error
	block  bool
	calls  int
}

// NewMockQuoteProvider creates a new mock quote provider
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		quotes: make([]domain.Quote, 0),
	}
}

// SetQuotes sets the quotes to return
func (m *MockQuoteProvider) SetQuotes(quotes []domain.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = quotes
}

// SetError sets the error to return
func (m *MockQuoteProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetBlocking makes Markets wait until its context is done
func (m *MockQuoteProvider) SetBlocking(block bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = block
}

// Calls returns how many times Markets was invoked
func (m *MockQuoteProvider) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// Markets returns up to perPage configured quotes
func (m *MockQuoteProvider) Markets(ctx context.Context, perPage int) ([]domain.Quote, error) {
	m.mu.Lock()
	m.calls++
	block, err := m.block, m.err
	quotes := m.quotes
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if perPage < len(quotes) {
		quotes = quotes[:perPage]
	}
	result := make([]domain.Quote, len(quotes))
	copy(result, quotes)
	return result, nil
}
