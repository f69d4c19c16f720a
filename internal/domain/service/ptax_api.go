package service

import (
	"context"
	"time"

	"github.com/shx/ptax-quote-service/internal/domain/entity"
)

// PTAXAPI defines the interface for interacting with the central bank's
// PTAX quote API.
type PTAXAPI interface {
	// FetchDay retrieves the quote published on a single date. The result
	// is empty when no quote was published that day.
	FetchDay(ctx context.Context, date time.Time) ([]entity.Quote, error)

	// FetchRange retrieves the quotes published within a period, in the
	// order returned by the upstream.
	FetchRange(ctx context.Context, period entity.Period) ([]entity.Quote, error)
}
