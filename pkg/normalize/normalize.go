// Package normalize converts raw source scalars into the safe numeric, date and
// categorical forms stored by the pipeline.
//
// Every function is total: malformed input yields nil instead of an error, and
// applying a function to its own output returns the same value.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/agentstation/orbitalguard/pkg/constants"
)

// Float returns v as a finite float64, or nil for empty, "N/A", non-numeric, NaN and ±Inf input.
func Float(v any) *float64 {
	v = deref(v)
	if v == nil {
		return nil
	}

	var f float64
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if isNull(s) {
			return nil
		}
		parsed, err := parseDecimal(s)
		if err != nil {
			return nil
		}
		f = parsed
	case json.Number:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x.String()), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case bool, time.Time:
		return nil
	default:
		parsed, err := cast.ToFloat64E(x)
		if err != nil {
			return nil
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseDecimal parses s as a base-10 float. Hexadecimal mantissas such as
// "0x1p-2" are rejected even though strconv accepts them.
func parseDecimal(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// Date returns the first ten characters of v when they form a YYYY-MM-DD date
// with month 1-12 and day 1-31. Calendar validity beyond that is not checked.
func Date(v any) *string {
	s, ok := text(v)
	if !ok || isNull(s) {
		return nil
	}

	if r := []rune(s); len(r) > constants.DateLength {
		s = string(r[:constants.DateLength])
	}
	if !isISODate(s) {
		return nil
	}
	return &s
}

// Upper returns the trimmed, uppercased form of v for categorical fields.
func Upper(v any) *string {
	s, ok := text(v)
	if !ok {
		return nil
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if isNull(s) {
		return nil
	}
	return &s
}

// Strip returns the trimmed form of v for free-text fields, preserving case.
func Strip(v any) *string {
	s, ok := text(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil
	}
	return &s
}

// Int returns v as an identity key. Integral floats such as 25544.0 are
// accepted; fractional, non-finite and non-numeric values are not.
func Int(v any) (int64, bool) {
	v = deref(v)
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case string:
		return parseInt(x)
	case json.Number:
		return parseInt(x.String())
	}

	f := Float(v)
	if f == nil {
		return 0, false
	}
	return integral(*f)
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f := Float(s)
	if f == nil {
		return 0, false
	}
	return integral(*f)
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// text converts a scalar to its string form.
func text(v any) (string, bool) {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case time.Time:
		return x.Format(time.DateOnly), true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// deref unwraps the pointer forms produced by this package.
func deref(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func isNull(s string) bool {
	return s == "" || s == constants.NotAvailable
}

func isISODate(s string) bool {
	if len(s) != constants.DateLength || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}
