package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

// writeFixture writes the two raw input tables into dir. The dataset is
// small but touches every stage: malformed embedded fields, shared
// genres above the similarity threshold, and a repeated screen pairing
// above the collaboration threshold.
func writeFixture(t *testing.T, dir string) {
	t.Helper()

	allGenres := `[{'id': 10, 'name': 'Drama'}, {'id': 20, 'name': 'Crime'}, {'id': 30, 'name': 'Thriller'}]`
	duo := `[{'id': 100, 'name': 'Alice Actor', 'character': 'Lead', 'order': 0},` +
		` {'id': 200, 'name': 'Bob Builder', 'character': 'Foil', 'order': 1}]`

	metadata := tabio.NewTable("id", "title", "release_date", "budget", "revenue",
		"popularity", "vote_average", "vote_count", "overview",
		"genres", "keywords", "production_companies")
	metadata.AppendRow([]string{"1", "First", "2001-01-01", "1000", "5000", "1.5", "7.1", "100", "one",
		allGenres, `[{'id': 7, 'name': 'heist'}]`, `[{'id': 500, 'name': 'Studio X', 'origin_country': 'US'}]`})
	metadata.AppendRow([]string{"2", "Second", "2002-02-02", "2000", "6000", "2.5", "7.2", "200", "two",
		allGenres, "[]", "[]"})
	metadata.AppendRow([]string{"3", "Third", "2003-03-03", "3000", "7000", "3.5", "7.3", "300", "three",
		allGenres, "not parseable at all", "[]"})

	credits := tabio.NewTable("movie_id", "title", "cast", "crew")
	credits.AppendRow([]string{"1", "First", duo, "[]"})
	credits.AppendRow([]string{"2", "Second", duo, "[]"})
	credits.AppendRow([]string{"3", "Third", "[]",
		`[{'id': 900, 'name': 'Dana Director', 'job': 'Director', 'department': 'Directing'}]`})

	for name, table := range map[string]*tabio.Table{
		"movies_raw.csv":  metadata,
		"credits_raw.csv": credits,
	} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, tabio.WriteCSV(f, table))
		require.NoError(t, f.Close())
	}
}

func testOptions() Options {
	return Options{
		MetadataFile:           "movies_raw.csv",
		CreditsFile:            "credits_raw.csv",
		MaxCast:                10,
		SimilarityThreshold:    2,
		CollaborationThreshold: 1,
	}
}

func runPipeline(t *testing.T, inDir, outDir string) *Report {
	t.Helper()
	sink, err := tabio.NewDirSink(outDir, "test-run", false)
	require.NoError(t, err)

	p := New(nil, nil, tabio.NewDirSource(inDir), sink, testOptions())
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	return report
}

func readOutput(t *testing.T, outDir, table string) *tabio.Table {
	t.Helper()
	f, err := os.Open(filepath.Join(outDir, table+".csv"))
	require.NoError(t, err)
	defer f.Close()
	parsed, err := tabio.ReadCSV(f)
	require.NoError(t, err)
	return parsed
}

func TestRunEndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFixture(t, inDir)

	report := runPipeline(t, inDir, outDir)

	assert.Equal(t, 3, report.Extract.RowsProcessed)
	assert.Equal(t, map[string]int{
		"Movie": 3, "Person": 3, "Genre": 3, "Keyword": 1, "Company": 1,
	}, report.NodeCounts)
	assert.Equal(t, 1, report.Extract.ParseFailures["keywords"])

	// Every output table is published, plus the manifest.
	for _, name := range OutputTables {
		assert.FileExists(t, filepath.Join(outDir, name+".csv"))
	}
	manifest, err := tabio.ReadManifest(filepath.Join(outDir, tabio.ManifestFileName))
	require.NoError(t, err)
	assert.Equal(t, "test-run", manifest.RunID)
	assert.Len(t, manifest.Tables, len(OutputTables))

	// All three movies share all three genres, so every pair clears the
	// similarity threshold with score 3.
	similar := readOutput(t, outDir, TableSimilarTo)
	require.Equal(t, 3, similar.NumRows())
	assert.Equal(t, "1", similar.Value(0, "movie_a"))
	assert.Equal(t, "2", similar.Value(0, "movie_b"))
	assert.Equal(t, "3", similar.Value(0, "score"))

	// The duo acted together in two movies.
	worked := readOutput(t, outDir, TableWorkedWith)
	require.Equal(t, 1, worked.NumRows())
	assert.Equal(t, "100", worked.Value(0, "person_a"))
	assert.Equal(t, "200", worked.Value(0, "person_b"))
	assert.Equal(t, "2", worked.Value(0, "movie_count"))

	// The director came through the crew path.
	directed := readOutput(t, outDir, TableDirected)
	require.Equal(t, 1, directed.NumRows())
	assert.Equal(t, "900", directed.Value(0, "person_id"))
	assert.Equal(t, "3", directed.Value(0, "movie_id"))
}

func TestRunIsDeterministic(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir)

	outA := filepath.Join(t.TempDir(), "out")
	outB := filepath.Join(t.TempDir(), "out")
	runPipeline(t, inDir, outA)
	runPipeline(t, inDir, outB)

	for _, name := range OutputTables {
		a, err := os.ReadFile(filepath.Join(outA, name+".csv"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(outB, name+".csv"))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "table %s differs between runs", name)
	}
}

func TestRunMissingInputLeavesNoOutput(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFixture(t, inDir)
	require.NoError(t, os.Remove(filepath.Join(inDir, "credits_raw.csv")))

	sink, err := tabio.NewDirSink(outDir, "test-run", false)
	require.NoError(t, err)
	p := New(nil, nil, tabio.NewDirSource(inDir), sink, testOptions())

	_, err = p.Run(context.Background())
	require.Error(t, err)

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "read", perr.Stage)
	assert.ErrorIs(t, err, ErrInputNotFound)

	assert.NoDirExists(t, outDir)
	assert.NoDirExists(t, outDir+".staging")
}

func TestRunReconcileFailureIsTagged(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFixture(t, inDir)

	// Replace credits with a table that has no recognizable key column.
	credits := tabio.NewTable("person", "cast")
	credits.AppendRow([]string{"x", "[]"})
	f, err := os.Create(filepath.Join(inDir, "credits_raw.csv"))
	require.NoError(t, err)
	require.NoError(t, tabio.WriteCSV(f, credits))
	require.NoError(t, f.Close())

	sink, err := tabio.NewDirSink(outDir, "test-run", false)
	require.NoError(t, err)
	p := New(nil, nil, tabio.NewDirSource(inDir), sink, testOptions())

	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReconcileFailed)
	assert.NoDirExists(t, outDir)
}

func TestRunReplacesPreviousOutput(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFixture(t, inDir)

	runPipeline(t, inDir, outDir)
	first := readOutput(t, outDir, TableMovies)

	// Second run with one more movie in the metadata replaces the
	// published output wholesale.
	f, err := os.OpenFile(filepath.Join(inDir, "movies_raw.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("4,Fourth,2004-04-04,0,0,0,0,0,four,[],[],[]\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cf, err := os.OpenFile(filepath.Join(inDir, "credits_raw.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = cf.WriteString("4,Fourth,[],[]\n")
	require.NoError(t, err)
	require.NoError(t, cf.Close())

	runPipeline(t, inDir, outDir)
	second := readOutput(t, outDir, TableMovies)
	assert.Equal(t, first.NumRows()+1, second.NumRows())
}
