package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/infrastructure/logger"
)

const (
	ptaxBaseURL    = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"
	dayQuotePath   = "/CotacaoDolarDia(dataCotacao=@dataCotacao)"
	rangeQuotePath = "/CotacaoDolarPeriodo(dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)"

	// quoteTimestampLayout matches the combined date-time field of a PTAX
	// record. The upstream may append fractional seconds, which time.Parse
	// accepts without the layout naming them.
	quoteTimestampLayout = "2006-01-02 15:04:05"
)

// PTAXClient implements the PTAX API interface against the central bank's
// Olinda OData endpoints.
type PTAXClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewPTAXClient creates a new PTAX API client
func NewPTAXClient(httpClient *http.Client, log logger.Logger) *PTAXClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &PTAXClient{
		baseURL:    ptaxBaseURL,
		httpClient: httpClient,
		logger:     log,
	}
}

// SetBaseURL overrides the Olinda endpoint, for tests and local proxies.
func (c *PTAXClient) SetBaseURL(baseURL string) {
	if baseURL != "" {
		c.baseURL = baseURL
	}
}

// ptaxResponse represents the response structure from the Olinda API
type ptaxResponse struct {
	Value []struct {
		BuyPrice       decimal.Decimal `json:"cotacaoCompra"`
		SellPrice      decimal.Decimal `json:"cotacaoVenda"`
		QuoteTimestamp string          `json:"dataHoraCotacao"`
	} `json:"value"`
}

// FetchDay retrieves the quote published on a single date. An empty result
// means the central bank published nothing that day (weekend, holiday, or
// before the market-close cutoff).
func (c *PTAXClient) FetchDay(ctx context.Context, date time.Time) ([]entity.Quote, error) {
	reqURL := fmt.Sprintf("%s%s?%%40dataCotacao='%s'&%%24format=json",
		c.baseURL,
		dayQuotePath,
		date.Format(entity.DateLayout))

	return c.fetch(ctx, reqURL)
}

// FetchRange retrieves the quotes published within a period in one call. The
// page size is the inclusive day count so both endpoints are covered; the
// upstream's chronological order is preserved as-is.
func (c *PTAXClient) FetchRange(ctx context.Context, period entity.Period) ([]entity.Quote, error) {
	reqURL := fmt.Sprintf("%s%s?%%40dataInicial='%s'&%%40dataFinalCotacao='%s'&%%24format=json&%%24skip=0&%%24top=%d",
		c.baseURL,
		rangeQuotePath,
		period.Start.Format(entity.DateLayout),
		period.End.Format(entity.DateLayout),
		period.InclusiveDayCount())

	return c.fetch(ctx, reqURL)
}

// fetch executes a GET against an Olinda URL and parses the value array.
func (c *PTAXClient) fetch(ctx context.Context, reqURL string) ([]entity.Quote, error) {
	c.logger.Debug("PTAX API request", map[string]interface{}{
		"url": reqURL,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	// Execute request with retry logic
	var resp *http.Response
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err = c.httpClient.Do(req)
		if err == nil {
			break
		}

		if attempt < maxRetries {
			backoffTime := time.Duration(attempt*attempt) * time.Second
			c.logger.Warn("PTAX request failed, retrying", map[string]interface{}{
				"attempt":     attempt,
				"max_retries": maxRetries,
				"backoff":     backoffTime.String(),
				"error":       err.Error(),
			})
			time.Sleep(backoffTime)

			req, err = http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to create request for retry: %w", err)
			}
			req.Header.Add("Accept", "application/json")
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API returned error status: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed ptaxResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	quotes := make([]entity.Quote, 0, len(parsed.Value))
	for _, record := range parsed.Value {
		timestamp, err := time.ParseInLocation(quoteTimestampLayout, record.QuoteTimestamp, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quote timestamp '%s': %w", record.QuoteTimestamp, err)
		}

		quote := entity.Quote{
			Price: record.BuyPrice,
			Date:  time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(), 0, 0, 0, 0, time.UTC),
			Time:  timestamp.Format("15:04:05"),
		}

		if err := quote.Validate(); err != nil {
			return nil, fmt.Errorf("invalid quote record for %s: %w", record.QuoteTimestamp, err)
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}
