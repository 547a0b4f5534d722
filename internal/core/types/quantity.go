// Package types provides the numeric types shared by every inventory component.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is a fixed-point stock quantity with 4 decimal places (scale = 1e4).
// Fractional units (kg, litre) are common in fresh produce, so integers are not enough,
// and float64 drifts when ordered/received/damaged are compared.
type Quantity int64

const QuantityScale int64 = 10_000

func NewQuantity(whole int64) Quantity { return Quantity(whole * QuantityScale) }

func NewQuantityFromFloat64(v float64) Quantity {
	return Quantity(math.Round(v * float64(QuantityScale)))
}

// ParseQuantity parses a decimal string such as "12", "2.5" or "-0.125".
func ParseQuantity(s string) (Quantity, error) {
	return parseQuantityString(s)
}

func (q Quantity) Float64() float64 { return float64(q) / float64(QuantityScale) }

func (q Quantity) IsZero() bool { return q == 0 }

func (q Quantity) IsPositive() bool { return q > 0 }

func (q Quantity) IsNegative() bool { return q < 0 }

func (q Quantity) Add(o Quantity) Quantity { return q + o }

func (q Quantity) Sub(o Quantity) Quantity { return q - o }

func (q Quantity) Neg() Quantity { return -q }

// Min returns the smaller of q and o.
func (q Quantity) Min(o Quantity) Quantity {
	if o < q {
		return o
	}
	return q
}

// Max returns the larger of q and o.
func (q Quantity) Max(o Quantity) Quantity {
	if o > q {
		return o
	}
	return q
}

// String returns the shortest decimal form ("10", "2.5", "0.0125").
func (q Quantity) String() string {
	v := int64(q)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	intPart := v / QuantityScale
	frac := v % QuantityScale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, intPart)
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%04d", frac), "0")
	return fmt.Sprintf("%s%d.%s", sign, intPart, fracStr)
}

// MarshalJSON encodes Quantity as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a numeric string.
// The backend sends quantities as strings on some report endpoints.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if strings.TrimSpace(raw) == "" {
			*q = 0
			return nil
		}
	}

	parsed, err := parseQuantityString(raw)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func parseQuantityString(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}

	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse quantity: %w", err)
		}
		if math.IsNaN(f) || math.Abs(f) >= float64(math.MaxInt64/QuantityScale) {
			return 0, fmt.Errorf("quantity %q out of range", s)
		}
		return NewQuantityFromFloat64(f), nil
	}

	sign := int64(1)
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		sign = -1
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	whole, fracStr, _ := strings.Cut(digits, ".")
	if whole == "" && fracStr == "" {
		return 0, fmt.Errorf("quantity %q has no digits", s)
	}
	if !isDigits(whole) || !isDigits(fracStr) {
		return 0, fmt.Errorf("quantity %q is not a decimal number", s)
	}
	if whole == "" {
		whole = "0"
	}
	intPart, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quantity integer part: %w", err)
	}

	// Truncate beyond 4 digits, pad right below.
	if len(fracStr) > 4 {
		fracStr = fracStr[:4]
	}
	fracStr += strings.Repeat("0", 4-len(fracStr))
	frac, err := strconv.ParseInt(fracStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quantity fractional part: %w", err)
	}

	if intPart > (math.MaxInt64-frac)/QuantityScale {
		return 0, fmt.Errorf("quantity %q out of range", s)
	}
	return Quantity(sign * (intPart*QuantityScale + frac)), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
