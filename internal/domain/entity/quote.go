package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents a single USD/BRL PTAX quote as published by the central bank.
type Quote struct {
	Price decimal.Decimal `json:"price"`
	Date  time.Time       `json:"date"`
	Time  string          `json:"time"`
}

// PersistedQuote is a quote that has been stored, with its generated identifier.
// The quote date is the natural key; at most one row exists per calendar date.
type PersistedQuote struct {
	ID string `json:"id"`
	Quote
}

// Validate ensures the quote meets all requirements
func (q *Quote) Validate() error {
	if q.Price.IsNegative() {
		return errors.New("price must not be negative")
	}

	if q.Time == "" {
		return errors.New("publication time is required")
	}

	return nil
}

// QuotesBelow returns the quotes strictly cheaper than the reference quote.
// Quotes priced equal to the reference are excluded. Input order is preserved.
func QuotesBelow(quotes []Quote, reference Quote) []Quote {
	result := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if reference.Price.GreaterThan(q.Price) {
			result = append(result, q)
		}
	}
	return result
}

// QuotesAbove returns the quotes strictly more expensive than the reference
// quote. Quotes priced equal to the reference are excluded. Input order is
// preserved.
func QuotesAbove(quotes []Quote, reference Quote) []Quote {
	result := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Price.GreaterThan(reference.Price) {
			result = append(result, q)
		}
	}
	return result
}
