package entity

import (
	"regexp"
	"time"
)

// DateLayout is the textual date format accepted on the service boundary
// (MM-DD-YYYY), matching what the PTAX Olinda API expects in its query
// parameters.
const DateLayout = "01-02-2006"

// datePattern rejects inputs time.Parse would be lenient about, such as
// single-digit months or different separators.
var datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// Period is a closed date range used to bound a range query against the
// upstream API. Start is always strictly before End.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a single MM-DD-YYYY date with strict calendar validation.
// Out-of-range components (month 13, day 32) and any other format fail with
// *InvalidDateError.
func ParseDate(text string) (time.Time, error) {
	if !datePattern.MatchString(text) {
		return time.Time{}, &InvalidDateError{Input: text}
	}

	date, err := time.ParseInLocation(DateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: text}
	}

	return date, nil
}

// ParsePeriod parses a start/end date pair into a Period. Both dates must be
// valid per ParseDate and start must be strictly before end; equal dates are
// rejected.
func ParsePeriod(startText, endText string) (Period, error) {
	start, err := ParseDate(startText)
	if err != nil {
		return Period{}, err
	}

	end, err := ParseDate(endText)
	if err != nil {
		return Period{}, err
	}

	if !start.Before(end) {
		return Period{}, &InvalidDateError{Input: startText + " / " + endText}
	}

	return Period{Start: start, End: end}, nil
}

// InclusiveDayCount returns the number of calendar days the period spans,
// counting both endpoints. It sizes the upstream page so a range request
// returns the whole period in one call.
func (p Period) InclusiveDayCount() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// FormatDate renders a date back into the boundary MM-DD-YYYY format.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
