package fieldparse

import (
	"reflect"
	"testing"
)

func TestParseEmptyInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace", "   "},
		{"nan", "nan"},
		{"NaN", "NaN"},
		{"None", "None"},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)
			if res.Outcome != OutcomeEmpty {
				t.Errorf("Parse(%q).Outcome = %v, want empty", tt.input, res.Outcome)
			}
			if len(res.Records) != 0 {
				t.Errorf("Parse(%q) returned %d records", tt.input, len(res.Records))
			}
		})
	}
}

func TestParseWellFormed(t *testing.T) {
	res := Parse(`[{"id": 18, "name": "Drama"}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if id, ok := res.Records[0].Int64("id"); !ok || id != 18 {
		t.Errorf("id = %d (ok=%v), want 18", id, ok)
	}
	if name := res.Records[0].String("name"); name != "Drama" {
		t.Errorf("name = %q, want Drama", name)
	}
}

func TestParseSingleQuoted(t *testing.T) {
	res := Parse(`[{'id': 18, 'name': 'Drama'}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if id, _ := res.Records[0].Int64("id"); id != 18 {
		t.Errorf("id = %d, want 18", id)
	}
}

func TestParseTrailingCommaMatchesWellFormed(t *testing.T) {
	clean := Parse(`[{'id': 18, 'name': 'Drama'}]`)
	trailing := Parse(`[{'id': 18, 'name': 'Drama',}]`)

	if trailing.Outcome != OutcomeParsed {
		t.Fatalf("trailing comma Outcome = %v, want parsed", trailing.Outcome)
	}
	if !reflect.DeepEqual(clean.Records, trailing.Records) {
		t.Errorf("trailing comma parse differs:\n  clean:    %v\n  trailing: %v",
			clean.Records, trailing.Records)
	}
}

func TestParseApostropheInValue(t *testing.T) {
	res := Parse(`[{'id': 161, 'title': 'Ocean's Eleven'}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if title := res.Records[0].String("title"); title != "Ocean's Eleven" {
		t.Errorf("title = %q, want Ocean's Eleven", title)
	}
}

func TestParsePythonConstants(t *testing.T) {
	res := Parse(`[{'id': 5, 'adult': False, 'profile_path': None}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	rec := res.Records[0]
	if v, ok := rec["adult"]; !ok || v != false {
		t.Errorf("adult = %v, want false", v)
	}
	if v, ok := rec["profile_path"]; !ok || v != nil {
		t.Errorf("profile_path = %v, want nil", v)
	}
}

func TestParseEmptyList(t *testing.T) {
	res := Parse(`[]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if res.Records == nil || len(res.Records) != 0 {
		t.Errorf("Records = %v, want empty non-nil sequence", res.Records)
	}
}

func TestParseLoneObject(t *testing.T) {
	res := Parse(`{'id': 7, 'name': 'Warners'}`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
}

func TestParseScalarElementsDropped(t *testing.T) {
	res := Parse(`[{"id": 1}, 42, "stray", {"id": 2}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2 (scalars dropped)", len(res.Records))
	}
}

func TestParseUnrecoverable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced braces", `[{"id": 1`},
		{"garbage", `<<<not a list>>>`},
		{"unterminated string", `[{'name': 'missing`},
		{"trailing junk", `[] and then some`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.input)
			if res.Outcome != OutcomeFailed {
				t.Errorf("Parse(%q).Outcome = %v, want failed", tt.input, res.Outcome)
			}
			if len(res.Records) != 0 {
				t.Errorf("failed parse returned records: %v", res.Records)
			}
			if res.Err == nil {
				t.Error("failed parse carries no diagnostic error")
			}
		})
	}
}

func TestParseNestedStructure(t *testing.T) {
	res := Parse(`[{'id': 1, 'tags': ['a', 'b'], 'meta': {'depth': 2}}]`)
	if res.Outcome != OutcomeParsed {
		t.Fatalf("Outcome = %v, want parsed", res.Outcome)
	}
	rec := res.Records[0]
	tags, ok := rec["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v", rec["tags"])
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"float_id":  float64(42),
		"int_id":    int64(7),
		"string_id": "19",
		"frac":      float64(3.5),
		"name":      "x",
		"nothing":   nil,
	}

	if id, ok := rec.Int64("float_id"); !ok || id != 42 {
		t.Errorf("Int64(float_id) = %d, %v", id, ok)
	}
	if id, ok := rec.Int64("int_id"); !ok || id != 7 {
		t.Errorf("Int64(int_id) = %d, %v", id, ok)
	}
	if id, ok := rec.Int64("string_id"); !ok || id != 19 {
		t.Errorf("Int64(string_id) = %d, %v", id, ok)
	}
	if _, ok := rec.Int64("frac"); ok {
		t.Error("Int64(frac) accepted a fractional value")
	}
	if _, ok := rec.Int64("absent"); ok {
		t.Error("Int64(absent) reported ok")
	}
	if s := rec.String("nothing"); s != "" {
		t.Errorf("String(nothing) = %q", s)
	}
	if f, ok := rec.Float64("frac"); !ok || f != 3.5 {
		t.Errorf("Float64(frac) = %v, %v", f, ok)
	}
}
