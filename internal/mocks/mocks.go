// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// MockPTAXAPI mocks the PTAXAPI interface
type MockPTAXAPI struct {
	mock.Mock
}

func (m *MockPTAXAPI) FetchDay(ctx context.Context, date time.Time) ([]entity.Quote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quote), args.Error(1)
}

func (m *MockPTAXAPI) FetchRange(ctx context.Context, period entity.Period) ([]entity.Quote, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quote), args.Error(1)
}

// MockQuoteRepository mocks the QuoteRepository interface
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *entity.Quote) (repository.SaveResult, error) {
	args := m.Called(ctx, quote)
	return args.Get(0).(repository.SaveResult), args.Error(1)
}

func (m *MockQuoteRepository) FindByDate(ctx context.Context, date time.Time) (*entity.PersistedQuote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PersistedQuote), args.Error(1)
}
