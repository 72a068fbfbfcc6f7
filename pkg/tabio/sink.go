package tabio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// Sink consumes finalized output tables. Writes go to staged storage;
// nothing is authoritative until Commit succeeds, and Abort discards the
// staged output without touching any previous run's tables.
type Sink interface {
	// WriteTable serializes one finalized table under the given name.
	WriteTable(ctx context.Context, name string, t *Table) error
	// Commit atomically publishes everything written so far.
	Commit(ctx context.Context) error
	// Abort discards the staged output.
	Abort(ctx context.Context) error
}

// DirSink writes tables as CSV files into a directory. Files are staged
// in a sibling directory and swapped into place on Commit, together with
// a manifest recording row counts and content checksums, so a failed run
// never leaves a partial output directory behind.
type DirSink struct {
	outDir   string
	stageDir string
	compress bool
	manifest *Manifest
}

// NewDirSink creates a directory sink for the given output directory.
// When compress is set, tables are written snappy-framed with a .csv.sz
// extension.
func NewDirSink(outDir, runID string, compress bool) (*DirSink, error) {
	stageDir := outDir + ".staging"
	if err := os.RemoveAll(stageDir); err != nil {
		return nil, fmt.Errorf("clear stage dir: %w", err)
	}
	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create stage dir: %w", err)
	}
	return &DirSink{
		outDir:   outDir,
		stageDir: stageDir,
		compress: compress,
		manifest: NewManifest(runID),
	}, nil
}

// WriteTable stages one table as a CSV file.
func (s *DirSink) WriteTable(ctx context.Context, name string, t *Table) error {
	fileName := name + ".csv"
	if s.compress {
		fileName += ".sz"
	}

	f, err := os.Create(filepath.Join(s.stageDir, fileName))
	if err != nil {
		return fmt.Errorf("stage table %s: %w", name, err)
	}

	digest := newTableDigest()
	var w io.Writer = io.MultiWriter(f, digest)

	var compressor *snappy.Writer
	if s.compress {
		compressor = snappy.NewBufferedWriter(f)
		w = io.MultiWriter(compressor, digest)
	}

	if err := WriteCSV(w, t); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: %w", name, err)
	}
	if compressor != nil {
		if err := compressor.Close(); err != nil {
			f.Close()
			return fmt.Errorf("compress table %s: %w", name, err)
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync table %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close table %s: %w", name, err)
	}

	s.manifest.AddTable(fileName, t.NumRows(), digest.Sum())
	return nil
}

// Commit writes the manifest and swaps the staged directory into place.
// A previous output directory is moved aside first and restored if the
// swap fails.
func (s *DirSink) Commit(ctx context.Context) error {
	if err := s.manifest.WriteFile(filepath.Join(s.stageDir, ManifestFileName)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	previous := s.outDir + ".previous"
	hadPrevious := false
	if _, err := os.Stat(s.outDir); err == nil {
		if err := os.Rename(s.outDir, previous); err != nil {
			return fmt.Errorf("move previous output aside: %w", err)
		}
		hadPrevious = true
	}

	if err := os.Rename(s.stageDir, s.outDir); err != nil {
		if hadPrevious {
			os.Rename(previous, s.outDir) // best-effort restore
		}
		return fmt.Errorf("publish output: %w", err)
	}

	if hadPrevious {
		if err := os.RemoveAll(previous); err != nil {
			return fmt.Errorf("remove previous output: %w", err)
		}
	}
	return nil
}

// Abort removes the staged directory.
func (s *DirSink) Abort(ctx context.Context) error {
	return os.RemoveAll(s.stageDir)
}

// Manifest returns the manifest accumulated so far; written tables
// appear in write order.
func (s *DirSink) Manifest() *Manifest {
	return s.manifest
}
