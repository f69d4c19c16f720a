// Package service internal/application/service/current_quote_resolver.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shx/ptax-quote-service/internal/domain/entity"
	domainservice "github.com/shx/ptax-quote-service/internal/domain/service"
	"github.com/shx/ptax-quote-service/internal/infrastructure/logger"
)

// DefaultMaxLookbackDays bounds the backward scan when the upstream keeps
// returning empty days. The central bank normally publishes within a handful
// of business days, but stacked holidays can push that out.
const DefaultMaxLookbackDays = 30

// CurrentQuoteResolver finds the most recent published quote at or before
// today. The upstream publishes the daily PTAX quote only after a market
// close cutoff, and publishes nothing on weekends and holidays, so "current"
// degrades to "most recent available".
type CurrentQuoteResolver struct {
	api             domainservice.PTAXAPI
	maxLookbackDays int
	now             func() time.Time
	logger          logger.Logger
}

// NewCurrentQuoteResolver creates a resolver with the given lookback bound.
// A non-positive bound falls back to DefaultMaxLookbackDays.
func NewCurrentQuoteResolver(api domainservice.PTAXAPI, maxLookbackDays int, log logger.Logger) *CurrentQuoteResolver {
	if maxLookbackDays <= 0 {
		maxLookbackDays = DefaultMaxLookbackDays
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrentQuoteResolver{
		api:             api,
		maxLookbackDays: maxLookbackDays,
		now:             time.Now,
		logger:          log,
	}
}

// ResolveCurrent walks backward one calendar day at a time starting from
// today until the upstream returns a published quote. The scan is bounded so
// a persistently empty upstream fails instead of looping forever.
func (r *CurrentQuoteResolver) ResolveCurrent(ctx context.Context) (*entity.Quote, error) {
	today := r.now().UTC()
	cursor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	for lookback := 0; lookback <= r.maxLookbackDays; lookback++ {
		quotes, err := r.api.FetchDay(ctx, cursor)
		if err != nil {
			return nil, &entity.UpstreamError{Message: "failed to fetch daily quote", Cause: err}
		}

		if len(quotes) > 0 {
			r.logger.Info("Current quote resolved", map[string]interface{}{
				"date":     entity.FormatDate(quotes[0].Date),
				"price":    quotes[0].Price.String(),
				"lookback": lookback,
			})
			// The single-day endpoint returns at most one record.
			return &quotes[0], nil
		}

		r.logger.Debug("No quote published, stepping back one day", map[string]interface{}{
			"date":     entity.FormatDate(cursor),
			"lookback": lookback,
		})

		cursor = cursor.AddDate(0, 0, -1)
	}

	return nil, &entity.UpstreamError{
		Message: fmt.Sprintf("no quote published within the last %d days", r.maxLookbackDays),
	}
}
