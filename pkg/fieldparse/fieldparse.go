// Package fieldparse decodes the embedded list-of-record fields found in
// the raw movie tables (cast, crew, genres, keywords, production
// companies). The fields are nominally JSON but arrive from an external
// source with single-quoted strings, trailing commas, Python literal
// spellings, and occasional outright corruption. Parse is total: it
// never fails the run, it only reports what it could recover.
package fieldparse

import (
	"encoding/json"
	"strings"
)

// Outcome tags what the parser was able to do with a raw field value.
type Outcome int

const (
	// OutcomeEmpty means the input was absent (nil, empty, or a known
	// null spelling) and there was nothing to decode
	OutcomeEmpty Outcome = iota
	// OutcomeParsed means a record sequence was decoded (possibly empty,
	// when the input was a well-formed empty list)
	OutcomeParsed
	// OutcomeFailed means every decode attempt failed; Records is empty
	OutcomeFailed
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeParsed:
		return "parsed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Record is one decoded key-value entry from an embedded field.
type Record map[string]any

// Result is the outcome of parsing one raw field value.
type Result struct {
	Outcome Outcome
	Records []Record
	// Err holds the last decode error when Outcome is OutcomeFailed.
	// It is diagnostic only; Parse itself never fails.
	Err error
}

// nullSpellings are raw values that mean "no data here". The pandas
// export writes float NaN for missing cells, which round-trips through
// CSV as the literal string "nan".
var nullSpellings = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
}

// Parse decodes one raw embedded field value into a record sequence.
//
// Attempts, in order: a strict JSON decode; a strict decode after the
// fixed normalization rewrites; a permissive literal decode that accepts
// single quotes, barewords, and Python constant spellings. The first
// attempt that succeeds wins, so well-formed input never pays for the
// fallbacks and identical input always takes the identical path.
func Parse(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if _, ok := nullSpellings[strings.ToLower(trimmed)]; ok {
		return Result{Outcome: OutcomeEmpty}
	}

	// Attempt 1: the input is valid JSON already.
	if recs, err := decodeStrict(trimmed); err == nil {
		return Result{Outcome: OutcomeParsed, Records: recs}
	}

	// Attempt 2: normalize the known malformations and retry.
	if recs, err := decodeStrict(Normalize(trimmed)); err == nil {
		return Result{Outcome: OutcomeParsed, Records: recs}
	}

	// Attempt 3: permissive literal decode.
	recs, err := decodePermissive(trimmed)
	if err == nil {
		return Result{Outcome: OutcomeParsed, Records: recs}
	}

	return Result{Outcome: OutcomeFailed, Err: err}
}

// decodeStrict runs a standard JSON decode and shapes the value into a
// record sequence.
func decodeStrict(input string) ([]Record, error) {
	var v any
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		return nil, err
	}
	return shapeRecords(v), nil
}

// decodePermissive runs the tolerant literal parser and shapes the value
// into a record sequence.
func decodePermissive(input string) ([]Record, error) {
	v, err := NewParser(input).ParseValue()
	if err != nil {
		return nil, err
	}
	return shapeRecords(v), nil
}

// shapeRecords coerces a decoded value into a record sequence. A list
// keeps its object elements and drops scalar ones; a lone object becomes
// a one-record sequence; anything else yields no records.
func shapeRecords(v any) []Record {
	switch val := v.(type) {
	case []any:
		recs := make([]Record, 0, len(val))
		for _, elem := range val {
			if m, ok := elem.(map[string]any); ok {
				recs = append(recs, Record(m))
			}
		}
		return recs
	case map[string]any:
		return []Record{Record(val)}
	default:
		return []Record{}
	}
}
