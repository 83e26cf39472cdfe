package stat

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is a nullable stat value. The zero Value is null.
type Value struct {
	v     float64
	valid bool
}

// Null is the null Value.
var Null = Value{}

// Of wraps f. NaN and infinities become null.
func Of(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return Value{v: f, valid: true}
}

// OfInt wraps an integer count.
func OfInt(n int) Value {
	return Value{v: float64(n), valid: true}
}

// Valid reports whether v holds a number.
func (v Value) Valid() bool { return v.valid }

// Float64 returns the number and whether it is set.
func (v Value) Float64() (float64, bool) { return v.v, v.valid }

// Or returns the number, or def when v is null.
func (v Value) Or(def float64) float64 {
	if !v.valid {
		return def
	}
	return v.v
}

// IsIntegral reports whether v holds a whole number.
func (v Value) IsIntegral() bool {
	return v.valid && v.v == math.Trunc(v.v)
}

// Format renders v for tabular output: empty for null, no decimals for whole
// counts, up to three decimals otherwise.
func (v Value) Format(k Kind) string {
	if !v.valid {
		return ""
	}
	if k == KindCount && v.IsIntegral() {
		return strconv.FormatInt(int64(v.v), 10)
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

func (v Value) String() string {
	if !v.valid {
		return "null"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// MarshalJSON encodes null or the number.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts null or a number.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Null
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

// Round3 rounds half away from zero to three decimal places on the decimal
// representation of f, so 1.0005 becomes 1.001.
func Round3(f float64) float64 {
	r, _ := decimal.NewFromFloat(f).Round(3).Float64()
	return r
}

// Ratio returns Round3(num/den), or null when den is not positive.
func Ratio(num, den float64) Value {
	if den <= 0 {
		return Null
	}
	return Of(Round3(num / den))
}
