package handler

import (
	"github.com/shopspring/decimal"
	"github.com/shx/ptax-quote-service/internal/domain/entity"
)

// responseDateLayout is the DD/MM/YYYY rendering used on the way out, as
// opposed to the MM-DD-YYYY accepted on the way in.
const responseDateLayout = "02/01/2006"

// QuoteResponse represents a single quote in API responses
type QuoteResponse struct {
	Price decimal.Decimal `json:"price"`
	Date  string          `json:"date"`
	Time  string          `json:"time"`
}

// StatusResponse carries the human-readable outcome of the save operation
type StatusResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func toQuoteResponse(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Price: q.Price,
		Date:  q.Date.Format(responseDateLayout),
		Time:  q.Time,
	}
}

func toQuoteResponses(quotes []entity.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		responses = append(responses, toQuoteResponse(q))
	}
	return responses
}
