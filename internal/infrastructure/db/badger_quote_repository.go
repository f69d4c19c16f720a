package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/domain/repository"
)

const quoteKeyPrefix = "quote:"

// maxConflictRetries bounds re-runs of the save transaction when concurrent
// writers race on the same date.
const maxConflictRetries = 3

// BadgerQuoteRepository implements the quote repository interface using
// BadgerDB. The calendar date is the key, so key existence is the uniqueness
// constraint: one row per date, first write wins.
type BadgerQuoteRepository struct {
	db *badger.DB
}

// NewBadgerQuoteRepository creates a new BadgerDB quote repository
func NewBadgerQuoteRepository(db *badger.DB) *BadgerQuoteRepository {
	return &BadgerQuoteRepository{db: db}
}

func quoteKey(date time.Time) []byte {
	return []byte(quoteKeyPrefix + date.Format("2006-01-02"))
}

// Save persists a quote keyed by its date. A date that already has a row is
// reported as SaveSkippedDuplicate, not an error. Racing writers are
// serialized by Badger's conflict detection: the loser re-runs, observes the
// winner's row and skips.
func (r *BadgerQuoteRepository) Save(ctx context.Context, quote *entity.Quote) (repository.SaveResult, error) {
	if err := quote.Validate(); err != nil {
		return 0, fmt.Errorf("refusing to store invalid quote: %w", err)
	}

	key := quoteKey(quote.Date)
	result := repository.SaveInserted

	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		result = repository.SaveInserted

		err = r.db.Update(func(txn *badger.Txn) error {
			_, getErr := txn.Get(key)
			if getErr == nil {
				result = repository.SaveSkippedDuplicate
				return nil
			}
			if !errors.Is(getErr, badger.ErrKeyNotFound) {
				return getErr
			}

			row := entity.PersistedQuote{
				ID:    uuid.New().String(),
				Quote: *quote,
			}

			data, marshalErr := json.Marshal(row)
			if marshalErr != nil {
				return fmt.Errorf("failed to marshal quote: %w", marshalErr)
			}

			return txn.Set(key, data)
		})

		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to store quote: %w", err)
	}

	return result, nil
}

// FindByDate retrieves the persisted quote for a calendar date
func (r *BadgerQuoteRepository) FindByDate(ctx context.Context, date time.Time) (*entity.PersistedQuote, error) {
	var row entity.PersistedQuote

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(quoteKey(date))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &row)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &entity.NotFoundError{Date: entity.FormatDate(date)}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve quote: %w", err)
	}

	return &row, nil
}
