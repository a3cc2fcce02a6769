package risk

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a value outside its valid range (negative money,
	// probability outside [0,1], NaN or Inf).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlignment marks a loan whose identity could not be matched against
	// its source-of-truth table.
	ErrAlignment = errors.New("loan identity mismatch")

	// ErrUndefined marks an aggregate whose denominator is zero.
	ErrUndefined = errors.New("undefined aggregate")
)

// LoanError ties a failure to the loan that caused it.
type LoanError struct {
	ID  string
	Err error
}

func (e *LoanError) Error() string {
	return fmt.Sprintf("loan %q: %v", e.ID, e.Err)
}

func (e *LoanError) Unwrap() error { return e.Err }

func (e *LoanError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}{e.ID, e.Err.Error()})
}

func invalid(field string, v float64, rule string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidInput, field, v, rule)
}
