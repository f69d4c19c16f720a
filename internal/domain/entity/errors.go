package entity

import "fmt"

// InvalidDateError signals a malformed or out-of-order date input. It is
// raised before any network or store access and maps to a 400 response.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date '%s': dates must be valid MM-DD-YYYY and the start date must precede the end date", e.Input)
}

// NotFoundError signals that no quote is persisted for the requested date.
// It maps to a 404 response.
type NotFoundError struct {
	Date string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no quote stored for date '%s'", e.Date)
}

// UpstreamError wraps any unexpected failure talking to the PTAX API or the
// store. The underlying cause message is preserved for diagnostics. It maps
// to a 500 response.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
