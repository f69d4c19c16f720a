// Package service internal/application/service/quote_service.go
package service

import (
	"context"
	"errors"

	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/domain/repository"
	domainservice "github.com/shx/ptax-quote-service/internal/domain/service"
	"github.com/shx/ptax-quote-service/internal/infrastructure/logger"
	"github.com/shx/ptax-quote-service/internal/infrastructure/middleware"
)

// Outcome messages for SavePeriod.
const (
	MsgQuotesSaved   = "quotes saved successfully"
	MsgNoQuotesFound = "no quotes found for the specified period"
)

// QuoteService orchestrates quote retrieval, classification and persistence.
type QuoteService struct {
	api      domainservice.PTAXAPI
	repo     repository.QuoteRepository
	resolver *CurrentQuoteResolver
	logger   logger.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(api domainservice.PTAXAPI, repo repository.QuoteRepository, resolver *CurrentQuoteResolver, log logger.Logger) *QuoteService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &QuoteService{
		api:      api,
		repo:     repo,
		resolver: resolver,
		logger:   log,
	}
}

// GetCurrent returns the most recent published quote at or before today.
func (s *QuoteService) GetCurrent(ctx context.Context) (*entity.Quote, error) {
	return s.resolver.ResolveCurrent(ctx)
}

// GetPeriod returns all quotes published within the given period.
func (s *QuoteService) GetPeriod(ctx context.Context, startText, endText string) ([]entity.Quote, error) {
	period, err := entity.ParsePeriod(startText, endText)
	if err != nil {
		return nil, err
	}

	quotes, err := s.api.FetchRange(ctx, period)
	if err != nil {
		s.logger.Error("Failed to fetch period quotes", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"start":      startText,
			"end":        endText,
			"error":      err.Error(),
		})
		return nil, wrapUpstream("failed to fetch quotes for period", err)
	}

	return quotes, nil
}

// GetBelowCurrent returns the quotes in the period priced strictly below the
// current quote. The period is validated before any network call.
func (s *QuoteService) GetBelowCurrent(ctx context.Context, startText, endText string) ([]entity.Quote, error) {
	period, err := entity.ParsePeriod(startText, endText)
	if err != nil {
		return nil, err
	}

	reference, err := s.resolver.ResolveCurrent(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.api.FetchRange(ctx, period)
	if err != nil {
		return nil, wrapUpstream("failed to fetch quotes for period", err)
	}

	below := entity.QuotesBelow(quotes, *reference)

	s.logger.Info("Quotes classified against current", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"reference":  reference.Price.String(),
		"period":     len(quotes),
		"below":      len(below),
	})

	return below, nil
}

// GetAboveCurrent returns the quotes in the period priced strictly above the
// current quote. The period is validated before any network call.
func (s *QuoteService) GetAboveCurrent(ctx context.Context, startText, endText string) ([]entity.Quote, error) {
	period, err := entity.ParsePeriod(startText, endText)
	if err != nil {
		return nil, err
	}

	reference, err := s.resolver.ResolveCurrent(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.api.FetchRange(ctx, period)
	if err != nil {
		return nil, wrapUpstream("failed to fetch quotes for period", err)
	}

	above := entity.QuotesAbove(quotes, *reference)

	s.logger.Info("Quotes classified against current", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"reference":  reference.Price.String(),
		"period":     len(quotes),
		"above":      len(above),
	})

	return above, nil
}

// SavePeriod fetches the quotes for a period and persists them, skipping
// dates that already have a stored row. The outcome message reports whether
// the period had any quotes at all; duplicates still count as saved.
func (s *QuoteService) SavePeriod(ctx context.Context, startText, endText string) (string, error) {
	requestID := middleware.GetRequestID(ctx)

	quotes, err := s.GetPeriod(ctx, startText, endText)
	if err != nil {
		return "", err
	}

	if len(quotes) == 0 {
		s.logger.Info("Nothing to save for period", map[string]interface{}{
			"request_id": requestID,
			"start":      startText,
			"end":        endText,
		})
		return MsgNoQuotesFound, nil
	}

	inserted, skipped := 0, 0
	for i := range quotes {
		result, err := s.repo.Save(ctx, &quotes[i])
		if err != nil {
			s.logger.Error("Failed to save quote", map[string]interface{}{
				"request_id": requestID,
				"date":       entity.FormatDate(quotes[i].Date),
				"error":      err.Error(),
			})
			return "", wrapUpstream("failed to save quotes", err)
		}

		if result == repository.SaveSkippedDuplicate {
			skipped++
		} else {
			inserted++
		}
	}

	s.logger.Info("Period quotes saved", map[string]interface{}{
		"request_id": requestID,
		"start":      startText,
		"end":        endText,
		"inserted":   inserted,
		"skipped":    skipped,
	})

	return MsgQuotesSaved, nil
}

// GetSavedByDate returns the previously persisted quote for a date.
func (s *QuoteService) GetSavedByDate(ctx context.Context, dateText string) (*entity.PersistedQuote, error) {
	date, err := entity.ParseDate(dateText)
	if err != nil {
		return nil, err
	}

	quote, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		var notFound *entity.NotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, wrapUpstream("failed to read stored quote", err)
	}

	return quote, nil
}

// wrapUpstream folds any unexpected failure into an UpstreamError so the
// boundary maps it to a 500, keeping InvalidDate and NotFound identities
// intact for their specific status codes.
func wrapUpstream(message string, err error) error {
	var invalid *entity.InvalidDateError
	var notFound *entity.NotFoundError
	var upstream *entity.UpstreamError

	if errors.As(err, &invalid) || errors.As(err, &notFound) || errors.As(err, &upstream) {
		return err
	}

	return &entity.UpstreamError{Message: message, Cause: err}
}
