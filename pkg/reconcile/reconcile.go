// Package reconcile merges the two raw movie tables (metadata and
// credits) into one working table addressable by canonical movie id.
// The two tables come from different exports: the credits table names
// its movie key differently, the two overlap on some column names, and
// either may be missing columns downstream stages require.
package reconcile

import (
	"errors"

	"github.com/dd0wney/cluso-moviegraph/pkg/logging"
	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// CanonicalKey is the column every merged row is addressable by.
const CanonicalKey = "id"

// keyCandidates are the column names observed to play the movie-id role
// in credits exports, in detection order.
var keyCandidates = []string{"id", "movie_id", "film_id", "tmdb_id"}

// ErrNoMatchingKeys is returned when the two tables share no movie ids
// at all; there is nothing meaningful to transform.
var ErrNoMatchingKeys = errors.New("metadata and credits tables share no matching movie ids")

// ErrNoKeyColumn is returned when a table has no recognizable movie-id
// column.
var ErrNoKeyColumn = errors.New("no movie id column found")

// ColumnDefault documents the value synthesized for a required column
// that is absent after the join.
type ColumnDefault struct {
	Name  string
	Value string
}

// DefaultColumns is the documented defaults table: every column the
// downstream stages require, with the value used when the input does not
// supply it. Free-text columns default to empty, numerics to zero,
// embedded list columns to an empty list; title gets a visible
// placeholder so a defaulted title is distinguishable from a blank one.
var DefaultColumns = []ColumnDefault{
	{Name: "title", Value: "Untitled"},
	{Name: "release_date", Value: ""},
	{Name: "overview", Value: ""},
	{Name: "budget", Value: "0"},
	{Name: "revenue", Value: "0"},
	{Name: "popularity", Value: "0"},
	{Name: "vote_average", Value: "0"},
	{Name: "vote_count", Value: "0"},
	{Name: "genres", Value: "[]"},
	{Name: "keywords", Value: "[]"},
	{Name: "production_companies", Value: "[]"},
	{Name: "cast", Value: "[]"},
	{Name: "crew", Value: "[]"},
}

// Diagnostics reports what the merge had to do to line the tables up.
// It is for operator troubleshooting, never for control flow.
type Diagnostics struct {
	RenamedKeyFrom   string   // credits key column renamed to the canonical key ("" if none)
	ResolvedColumns  []string // overlapping columns resolved by precedence
	DefaultedColumns []string // required columns synthesized after the join
	MetadataRows     int
	CreditsRows      int
	MergedRows       int
	UnmatchedRows    int // metadata rows with no credits counterpart
	DuplicateCredits int // credits rows ignored because their id was already seen
}

// Reconciler merges raw tables into the canonical working table.
type Reconciler struct {
	log      logging.Logger
	defaults []ColumnDefault
}

// New creates a reconciler that logs its diagnostics to the given
// logger.
func New(log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Reconciler{log: log.With(logging.Stage("reconcile")), defaults: DefaultColumns}
}

// Merge joins the metadata and credits tables on the canonical movie id
// and guarantees every column in the defaults table exists afterwards.
//
// Column conflicts resolve by fixed preference: the metadata value wins
// unless it is empty, in which case the credits value is taken. The join
// is inner; a run where no row matches at all is fatal.
func (r *Reconciler) Merge(metadata, credits *tabio.Table) (*tabio.Table, *Diagnostics, error) {
	diag := &Diagnostics{
		MetadataRows: metadata.NumRows(),
		CreditsRows:  credits.NumRows(),
	}

	if !metadata.HasColumn(CanonicalKey) {
		return nil, diag, ErrNoKeyColumn
	}

	if err := r.canonicalizeKey(credits, diag); err != nil {
		return nil, diag, err
	}

	// Index credits rows by id. The first row wins when an id repeats;
	// repeats are counted for the report.
	creditRows := make(map[string]int, credits.NumRows())
	for i := 0; i < credits.NumRows(); i++ {
		id := credits.Value(i, CanonicalKey)
		if id == "" {
			continue
		}
		if _, seen := creditRows[id]; seen {
			diag.DuplicateCredits++
			continue
		}
		creditRows[id] = i
	}

	merged, resolved := r.joinColumns(metadata, credits)

	resolvedUsed := make(map[string]bool, len(resolved))
	for i := 0; i < metadata.NumRows(); i++ {
		id := metadata.Value(i, CanonicalKey)
		creditRow, ok := creditRows[id]
		if id == "" || !ok {
			diag.UnmatchedRows++
			continue
		}

		row := make([]string, 0, len(merged.Columns))
		for _, col := range merged.Columns {
			switch {
			case metadata.HasColumn(col) && credits.HasColumn(col) && col != CanonicalKey:
				// Overlapping column: fixed precedence, metadata first.
				v := metadata.Value(i, col)
				if v == "" {
					v = credits.Value(creditRow, col)
				}
				row = append(row, v)
				resolvedUsed[col] = true
			case metadata.HasColumn(col):
				row = append(row, metadata.Value(i, col))
			default:
				row = append(row, credits.Value(creditRow, col))
			}
		}
		merged.AppendRow(row)
	}

	if merged.NumRows() == 0 {
		return nil, diag, ErrNoMatchingKeys
	}
	diag.MergedRows = merged.NumRows()

	for _, col := range resolved {
		if resolvedUsed[col] {
			diag.ResolvedColumns = append(diag.ResolvedColumns, col)
		}
	}

	r.applyDefaults(merged, diag)

	r.log.Info("tables reconciled",
		logging.Rows(merged.NumRows()),
		logging.Int("unmatched_rows", diag.UnmatchedRows),
		logging.Int("duplicate_credits", diag.DuplicateCredits),
		logging.Any("resolved_columns", diag.ResolvedColumns),
		logging.Any("defaulted_columns", diag.DefaultedColumns),
	)

	return merged, diag, nil
}

// canonicalizeKey finds the movie-id column in the credits table and
// renames it to the canonical key.
func (r *Reconciler) canonicalizeKey(credits *tabio.Table, diag *Diagnostics) error {
	for _, candidate := range keyCandidates {
		if !credits.HasColumn(candidate) {
			continue
		}
		if candidate != CanonicalKey {
			credits.RenameColumn(candidate, CanonicalKey)
			diag.RenamedKeyFrom = candidate
			r.log.Info("credits key column renamed",
				logging.String("from", candidate),
				logging.String("to", CanonicalKey),
			)
		}
		return nil
	}
	return ErrNoKeyColumn
}

// joinColumns builds the merged table's header: metadata columns first,
// then credits-only columns. Overlapping names collapse to a single
// column; the list of overlaps is returned for the diagnostics.
func (r *Reconciler) joinColumns(metadata, credits *tabio.Table) (*tabio.Table, []string) {
	columns := append([]string(nil), metadata.Columns...)
	var resolved []string
	for _, col := range credits.Columns {
		if !metadata.HasColumn(col) {
			columns = append(columns, col)
		} else if col != CanonicalKey {
			resolved = append(resolved, col)
		}
	}
	return tabio.NewTable(columns...), resolved
}

// applyDefaults synthesizes every required column that is absent after
// the join.
func (r *Reconciler) applyDefaults(merged *tabio.Table, diag *Diagnostics) {
	for _, def := range r.defaults {
		if merged.HasColumn(def.Name) {
			continue
		}
		merged.AddColumn(def.Name, def.Value)
		diag.DefaultedColumns = append(diag.DefaultedColumns, def.Name)
		r.log.Warn("required column missing, default synthesized",
			logging.Column(def.Name),
			logging.String("default", def.Value),
		)
	}
}
