package graphload

import (
	"testing"

	"github.com/dd0wney/cluso-moviegraph/pkg/extract"
)

func TestChunk(t *testing.T) {
	rows := make([]map[string]any, 7)
	for i := range rows {
		rows[i] = map[string]any{"i": i}
	}

	tests := []struct {
		name      string
		rows      []map[string]any
		size      int
		wantSizes []int
	}{
		{"empty", nil, 3, nil},
		{"exact multiple", rows[:6], 3, []int{3, 3}},
		{"remainder", rows, 3, []int{3, 3, 1}},
		{"oversized batch", rows, 100, []int{7}},
		{"single row batches", rows[:2], 1, []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunk(tt.rows, tt.size)
			if len(got) != len(tt.wantSizes) {
				t.Fatalf("chunk count = %d, want %d", len(got), len(tt.wantSizes))
			}
			for i, batch := range got {
				if len(batch) != tt.wantSizes[i] {
					t.Errorf("batch %d size = %d, want %d", i, len(batch), tt.wantSizes[i])
				}
			}
		})
	}
}

func TestMovieParams(t *testing.T) {
	rows := movieParams([]extract.Movie{
		{ID: 550, Title: "Fight Club", Budget: 63000000, VoteAverage: 8.4},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0]["id"] != int64(550) || rows[0]["title"] != "Fight Club" {
		t.Errorf("row = %v", rows[0])
	}
	if rows[0]["budget"] != int64(63000000) || rows[0]["vote_average"] != 8.4 {
		t.Errorf("row = %v", rows[0])
	}
}

func TestActedInParams(t *testing.T) {
	rows := actedInParams([]extract.ActedIn{
		{PersonID: 819, MovieID: 550, Character: "The Narrator", Order: 0},
	})
	if rows[0]["person_id"] != int64(819) || rows[0]["movie_id"] != int64(550) {
		t.Errorf("row = %v", rows[0])
	}
	if rows[0]["character"] != "The Narrator" || rows[0]["order"] != int64(0) {
		t.Errorf("row = %v", rows[0])
	}
}

func TestNewRejectsNothing(t *testing.T) {
	// Driver construction is lazy; a loader for an unreachable database
	// is still created, and connectivity is checked separately.
	l, err := New(Config{URI: "bolt://localhost:7687"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.batchSize != 1000 {
		t.Errorf("batchSize = %d, want default 1000", l.batchSize)
	}
}
