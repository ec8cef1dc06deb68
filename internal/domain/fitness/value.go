package fitness

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Value is a numeric input that may be absent. The zero Value is absent,
// which is distinct from a present zero. Values decoded from strings keep
// their text so Leading and Whole can read prefixes like "170cm".
type Value struct {
	num     float64
	present bool
	text    string
}

// Number returns a present Value.
func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{num: v, present: true}
}

// ParseValue parses a numeric string. Blank or unparseable input is absent.
func ParseValue(raw string) Value {
	v := parseStrict(raw)
	v.text = raw
	return v
}

func parseStrict(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Value{}
	}
	return Number(parsed)
}

// ParseLeading reads the decimal number at the start of raw and ignores
// whatever follows, so "170cm" is 170 and "cm170" is absent.
func ParseLeading(raw string) Value {
	return parseStrict(numericPrefix(raw, true))
}

// ParseLeadingInt reads the integer at the start of raw, so "67歳" and
// "67.9" are both 67.
func ParseLeadingInt(raw string) Value {
	return parseStrict(numericPrefix(raw, false))
}

// numericPrefix returns the longest prefix of raw, after leading space, that
// is a signed decimal. Fractions and exponents are only read when fraction is set.
func numericPrefix(raw string, fraction bool) string {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fraction {
		if i < len(s) && s[i] == '.' {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if digits > 0 || j > i+1 {
				digits += j - i - 1
				i = j
			}
		}
		if digits > 0 && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			start := j
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j > start {
				i = j
			}
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Leading is v read leniently: text input contributes its numeric prefix.
func (v Value) Leading() Value {
	if v.text != "" {
		return ParseLeading(v.text)
	}
	return v
}

// Whole is the integer part of v. Text input contributes its integer prefix.
func (v Value) Whole() Value {
	if v.text != "" {
		return ParseLeadingInt(v.text)
	}
	if !v.present {
		return Value{}
	}
	return Number(math.Trunc(v.num))
}

// Float returns the number and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.num, v.present
}

// Present reports whether a number was supplied.
func (v Value) Present() bool {
	return v.present
}

// String formats the number with the fewest digits needed, or "" when absent.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null. Booleans,
// objects and arrays decode as absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*v = ParseValue(raw)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*v = parseStrict(string(data))
		return nil
	default:
		*v = Value{}
		return nil
	}
}

// MarshalJSON writes null for an absent Value.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return []byte(v.String()), nil
}

// MeasurementSet maps metric ids to user supplied values.
type MeasurementSet map[MetricID]Value

// Get returns the value for id; a missing key is absent.
func (m MeasurementSet) Get(id MetricID) Value {
	if m == nil {
		return Value{}
	}
	return m[id]
}
