package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("01-15-2023")

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
		}{
			{"Out-of-range month", "13-01-2023"},
			{"Out-of-range day", "01-32-2023"},
			{"Non-existent calendar day", "02-30-2023"},
			{"Wrong separator", "01/15/2023"},
			{"Wrong ordering", "2023-01-15"},
			{"Two-digit year", "01-15-23"},
			{"Single-digit components", "1-5-2023"},
			{"Empty", ""},
			{"Garbage", "not-a-date"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ParseDate(tc.input)

				var invalidDate *InvalidDateError
				assert.Error(t, err)
				assert.True(t, errors.As(err, &invalidDate))
			})
		}
	})
}

func TestParsePeriod(t *testing.T) {
	t.Run("Valid period", func(t *testing.T) {
		period, err := ParsePeriod("01-02-2023", "01-05-2023")

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("Start equal to end is rejected", func(t *testing.T) {
		_, err := ParsePeriod("01-02-2023", "01-02-2023")

		var invalidDate *InvalidDateError
		assert.True(t, errors.As(err, &invalidDate))
	})

	t.Run("Start after end is rejected", func(t *testing.T) {
		_, err := ParsePeriod("01-05-2023", "01-02-2023")

		var invalidDate *InvalidDateError
		assert.True(t, errors.As(err, &invalidDate))
	})

	t.Run("Invalid component fails the pair", func(t *testing.T) {
		_, err := ParsePeriod("13-01-2023", "01-05-2023")
		assert.Error(t, err)

		_, err = ParsePeriod("01-01-2023", "01-32-2023")
		assert.Error(t, err)
	})
}

func TestInclusiveDayCount(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		days  int
	}{
		{"Adjacent days", "01-01-2023", "01-02-2023", 2},
		{"Ten day window", "01-01-2023", "01-10-2023", 10},
		{"Across a leap day", "02-28-2020", "03-01-2020", 3},
		{"Ten years", "12-01-2010", "12-01-2020", 3654},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			period, err := ParsePeriod(tc.start, tc.end)

			assert.NoError(t, err)
			assert.Equal(t, tc.days, period.InclusiveDayCount())
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01-15-2023", FormatDate(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)))
}
