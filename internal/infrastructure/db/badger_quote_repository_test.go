// internal/infrastructure/db/badger_quote_repository_test.go
package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/domain/repository"
	"github.com/stretchr/testify/assert"
)

func newTestRepository(t *testing.T) *BadgerQuoteRepository {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	opts.SyncWrites = false

	badgerDB, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		badgerDB.Close()
	})

	return NewBadgerQuoteRepository(badgerDB)
}

func testQuote(price string, date time.Time) *entity.Quote {
	return &entity.Quote{
		Price: decimal.RequireFromString(price),
		Date:  date,
		Time:  "13:09:37",
	}
}

func TestBadgerQuoteRepository(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Save and find round trip", func(t *testing.T) {
		repo := newTestRepository(t)

		result, err := repo.Save(ctx, testQuote("4.9372", date))
		assert.NoError(t, err)
		assert.Equal(t, repository.SaveInserted, result)

		found, err := repo.FindByDate(ctx, date)
		assert.NoError(t, err)
		assert.NotEmpty(t, found.ID)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("4.9372")))
		assert.Equal(t, "13:09:37", found.Time)
	})

	t.Run("Duplicate date is skipped, first write wins", func(t *testing.T) {
		repo := newTestRepository(t)

		first, err := repo.Save(ctx, testQuote("4.90", date))
		assert.NoError(t, err)
		assert.Equal(t, repository.SaveInserted, first)

		second, err := repo.Save(ctx, testQuote("9.99", date))
		assert.NoError(t, err)
		assert.Equal(t, repository.SaveSkippedDuplicate, second)

		found, err := repo.FindByDate(ctx, date)
		assert.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("4.90")))
	})

	t.Run("Missing date fails with NotFound carrying the date", func(t *testing.T) {
		repo := newTestRepository(t)

		_, err := repo.FindByDate(ctx, date)

		var notFound *entity.NotFoundError
		assert.True(t, errors.As(err, &notFound))
		assert.Contains(t, err.Error(), "11-10-2023")
	})

	t.Run("Invalid quote is refused", func(t *testing.T) {
		repo := newTestRepository(t)

		quote := testQuote("4.90", date)
		quote.Time = ""

		_, err := repo.Save(ctx, quote)
		assert.Error(t, err)
	})

	t.Run("Racing saves on one date leave exactly one row", func(t *testing.T) {
		repo := newTestRepository(t)

		const writers = 8
		results := make([]repository.SaveResult, writers)
		errs := make([]error, writers)

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = repo.Save(ctx, testQuote("4.95", date))
			}(i)
		}
		wg.Wait()

		inserted := 0
		for i := 0; i < writers; i++ {
			assert.NoError(t, errs[i])
			if results[i] == repository.SaveInserted {
				inserted++
			}
		}
		assert.Equal(t, 1, inserted)

		found, err := repo.FindByDate(ctx, date)
		assert.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("4.95")))
	})
}
