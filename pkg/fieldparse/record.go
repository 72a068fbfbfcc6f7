package fieldparse

import (
	"strconv"
	"strings"
)

// Int64 returns the named field as an int64. The raw data carries ids as
// JSON numbers, but a malformed row can smuggle them in as strings, so
// both shapes are accepted. ok is false when the field is absent or not
// usable as an integer.
func (r Record) Int64(key string) (int64, bool) {
	v, present := r[key]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// String returns the named field as a string. Non-string scalars are
// formatted; absent or null fields return "".
func (r Record) String(key string) string {
	v, present := r[key]
	if !present || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Float64 returns the named field as a float64.
func (r Record) Float64(key string) (float64, bool) {
	v, present := r[key]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
