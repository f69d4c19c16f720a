// Package repository internal/domain/repository/quote_repository.go
package repository

import (
	"context"
	"time"

	"github.com/shx/ptax-quote-service/internal/domain/entity"
)

// SaveResult reports the outcome of a save attempt. A duplicate date is an
// expected, recoverable outcome and is reported as a value rather than an
// error.
type SaveResult int

const (
	// SaveInserted means a new row was written for the quote's date.
	SaveInserted SaveResult = iota
	// SaveSkippedDuplicate means a row already existed for the quote's date
	// and the save was a no-op. The first write wins.
	SaveSkippedDuplicate
)

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// Save persists a quote, de-duplicating by calendar date.
	Save(ctx context.Context, quote *entity.Quote) (SaveResult, error)

	// FindByDate retrieves the persisted quote for a calendar date, failing
	// with *entity.NotFoundError when no row exists.
	FindByDate(ctx context.Context, date time.Time) (*entity.PersistedQuote, error)
}
