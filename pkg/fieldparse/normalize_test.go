package fieldparse

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single quotes",
			input:    `[{'id': 18, 'name': 'Drama'}]`,
			expected: `[{"id": 18, "name": "Drama"}]`,
		},
		{
			name:     "trailing comma in object",
			input:    `[{"id": 18,}]`,
			expected: `[{"id": 18}]`,
		},
		{
			name:     "trailing comma in array",
			input:    `[1, 2, 3,]`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "trailing comma with whitespace",
			input:    `[{"id": 18,   }]`,
			expected: `[{"id": 18 }]`,
		},
		{
			name:     "apostrophe inside value",
			input:    `{'title': 'Ocean's Eleven'}`,
			expected: `{"title": "Ocean's Eleven"}`,
		},
		{
			name:     "escaped quote inside value",
			input:    `{'title': 'It\'s Alive'}`,
			expected: `{"title": "It's Alive"}`,
		},
		{
			name:     "double quote inside single-quoted value",
			input:    `{'nick': 'the "duke"'}`,
			expected: `{"nick": "the \"duke\""}`,
		},
		{
			name:     "whitespace collapse outside strings",
			input:    "[1,\n\t  2]",
			expected: `[1, 2]`,
		},
		{
			name:     "whitespace preserved inside strings",
			input:    `{'a': 'two  spaces'}`,
			expected: `{"a": "two  spaces"}`,
		},
		{
			name:     "comma not trailing is kept",
			input:    `[1, 2]`,
			expected: `[1, 2]`,
		},
		{
			name:     "already normalized",
			input:    `[{"id": 1}]`,
			expected: `[{"id": 1}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotentOnCleanJSON(t *testing.T) {
	clean := `[{"id": 18, "name": "Drama"}, {"id": 35, "name": "Comedy"}]`
	if got := Normalize(clean); got != clean {
		t.Errorf("Normalize changed clean JSON: %q", got)
	}
}
