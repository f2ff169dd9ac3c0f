package horizon

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPrefix matches the longest numeric prefix left once a raw cell has
// been cleaned.
var numberPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// Number coerces an arbitrary cell value into a finite float64.
//
// Text follows the comma-decimal convention of the source spreadsheets:
// currency symbols and whitespace are dropped, every '.' is a thousands
// separator and the first ',' is the decimal point. The rule is applied
// blindly, so "12.5" reads as 125 and "1.234,56" as 1234.56.
//
// Native numbers are written out as text first and go through the same rule:
// integers are unaffected but 12.5 reads as 125. Anything that cannot be read,
// including NaN and infinities, is 0.
func Number(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	case json.Number:
		return parseNumber(n.String())
	case float64:
		return parseFloat(n)
	case float32:
		return parseFloat(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case Amount:
		return parseFloat(float64(n))
	case interface{ String() string }:
		return parseNumber(n.String())
	default:
		return 0
	}
}

func parseFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return parseNumber(strconv.FormatFloat(f, 'f', -1, 64))
}

func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	prefix := numberPrefix.FindString(cleaned)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// finite maps NaN and infinities to 0.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// nonNegative is finite and clamps negative values to 0.
func nonNegative(f float64) float64 {
	f = finite(f)
	if f < 0 {
		return 0
	}
	return f
}

// Amount is a float64 that tolerates the loose values operators type in: it
// decodes from JSON numbers, from text (read with Number) and from null.
type Amount float64

// Float64 returns the amount as a finite float64.
func (a Amount) Float64() float64 { return finite(float64(a)) }

// MarshalJSON encodes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float64())
}

// UnmarshalJSON reads JSON numbers as they are, text with Number, and null
// or any other shape as 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(Number(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// booleans and other shapes degrade to 0 like any unreadable cell.
		*a = 0
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(finite(f))
	return nil
}
