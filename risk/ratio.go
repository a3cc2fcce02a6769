package risk

import (
	"encoding/json"
	"math"
)

// Ratio is a quotient that is undefined when its denominator is zero.
// An undefined Ratio carries NaN and encodes as JSON null.
type Ratio struct {
	Value   float64
	Defined bool
}

func undefined() Ratio { return Ratio{Value: math.NaN()} }

func ratio(num, den float64) Ratio {
	if den == 0 {
		return undefined()
	}
	return Ratio{Value: num / den, Defined: true}
}

func percent(num, den float64) Ratio {
	r := ratio(num, den)
	if r.Defined {
		r.Value *= 100
	}
	return r
}

// Float returns the value or ErrUndefined.
func (r Ratio) Float() (float64, error) {
	if !r.Defined {
		return math.NaN(), ErrUndefined
	}
	return r.Value, nil
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Defined: true}
	return nil
}
