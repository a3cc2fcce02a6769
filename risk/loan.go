package risk

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Loan is one row of the portfolio as handed over by the data and model
// stages. The engine never modifies a Loan it was given.
type Loan struct {
	ID         string  `json:"id" yaml:"id" validate:"required"`
	LoanAmount float64 `json:"loan_amount" yaml:"loan_amount" validate:"gte=0"`
	PD         float64 `json:"pd" yaml:"pd" validate:"gte=0,lte=1"`
	LGD        float64 `json:"lgd" yaml:"lgd" validate:"gte=0,lte=1"`
	EAD        float64 `json:"ead" yaml:"ead" validate:"gte=0"`
	OwnsHome   bool    `json:"owns_home" yaml:"owns_home"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateLoan rejects a loan whose numbers cannot enter the pipeline.
// The returned error is a *LoanError wrapping ErrInvalidInput.
func ValidateLoan(l Loan) error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"loan_amount", l.LoanAmount},
		{"pd", l.PD},
		{"lgd", l.LGD},
		{"ead", l.EAD},
	} {
		if !finite(f.v) {
			return &LoanError{ID: l.ID, Err: invalid(f.name, f.v, "is not finite")}
		}
	}

	if err := validate.Struct(l); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &LoanError{ID: l.ID, Err: invalidField(fe)}
		}
		return &LoanError{ID: l.ID, Err: err}
	}
	return nil
}

func invalidField(fe validator.FieldError) error {
	v, _ := fe.Value().(float64)
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, fe.Field())
	case "gte":
		return invalid(fe.Field(), v, "must be >= "+fe.Param())
	case "lte":
		return invalid(fe.Field(), v, "must be <= "+fe.Param())
	}
	return invalid(fe.Field(), v, "failed "+fe.Tag())
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
