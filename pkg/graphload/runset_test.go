package graphload

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-moviegraph/pkg/tabio"
)

func publishRun(t *testing.T, outDir string, compress bool) {
	t.Helper()

	tables := map[string]*tabio.Table{
		"movies": tabio.NewTable("id", "title", "release_date", "budget", "revenue",
			"popularity", "vote_average", "vote_count", "overview"),
		"persons":        tabio.NewTable("id", "name", "gender", "profile_path", "popularity"),
		"genres":         tabio.NewTable("id", "name"),
		"keywords":       tabio.NewTable("id", "name"),
		"companies":      tabio.NewTable("id", "name", "origin_country"),
		"acted_in":       tabio.NewTable("person_id", "movie_id", "character", "order"),
		"directed":       tabio.NewTable("person_id", "movie_id", "job", "department"),
		"produced":       tabio.NewTable("company_id", "movie_id"),
		"categorized_as": tabio.NewTable("movie_id", "genre_id"),
		"tagged_with":    tabio.NewTable("movie_id", "keyword_id"),
		"similar_to":     tabio.NewTable("movie_a", "movie_b", "score"),
		"worked_with":    tabio.NewTable("person_a", "person_b", "movie_count"),
	}
	tables["movies"].AppendRow([]string{"550", "Fight Club", "1999-10-15", "63000000", "100853753", "0.5", "8.4", "9413", "ow"})
	tables["persons"].AppendRow([]string{"819", "Edward Norton", "2", "", "1.5"})
	tables["genres"].AppendRow([]string{"18", "Drama"})
	tables["acted_in"].AppendRow([]string{"819", "550", "The Narrator", "0"})
	tables["categorized_as"].AppendRow([]string{"550", "18"})
	tables["similar_to"].AppendRow([]string{"550", "551", "3"})

	sink, err := tabio.NewDirSink(outDir, "runset-test", compress)
	if err != nil {
		t.Fatalf("NewDirSink: %v", err)
	}
	ctx := context.Background()
	for name, table := range tables {
		if err := sink.WriteTable(ctx, name, table); err != nil {
			t.Fatalf("WriteTable %s: %v", name, err)
		}
	}
	if err := sink.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestReadRun(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "compressed"
		}
		t.Run(name, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "out")
			publishRun(t, outDir, compress)

			rs, err := ReadRun(outDir)
			if err != nil {
				t.Fatalf("ReadRun: %v", err)
			}

			if rs.Manifest.RunID != "runset-test" {
				t.Errorf("RunID = %q", rs.Manifest.RunID)
			}
			if len(rs.Graph.Movies) != 1 || rs.Graph.Movies[0].ID != 550 {
				t.Errorf("movies = %+v", rs.Graph.Movies)
			}
			if rs.Graph.Movies[0].VoteAverage != 8.4 {
				t.Errorf("vote_average = %v", rs.Graph.Movies[0].VoteAverage)
			}
			if len(rs.Graph.ActedIn) != 1 || rs.Graph.ActedIn[0].Character != "The Narrator" {
				t.Errorf("acted_in = %+v", rs.Graph.ActedIn)
			}
			if len(rs.Similar) != 1 || rs.Similar[0].Score != 3 {
				t.Errorf("similar = %+v", rs.Similar)
			}
			if !rs.Graph.HasMovie(550) || !rs.Graph.HasPerson(819) {
				t.Error("indexes not rebuilt")
			}
		})
	}
}

func TestReadRunMissingManifest(t *testing.T) {
	if _, err := ReadRun(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without a manifest")
	}
}
