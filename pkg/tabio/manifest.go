package tabio

import (
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the name of the manifest file written next to the
// output tables.
const ManifestFileName = "manifest.yaml"

// Manifest records what a committed run produced: the run id, when it
// was published, and per-table row counts and content checksums. The
// import side can verify it received exactly what the pipeline wrote.
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	CreatedAt string          `yaml:"created_at"`
	Tables    []ManifestEntry `yaml:"tables"`
}

// ManifestEntry describes one output table file.
type ManifestEntry struct {
	File     string `yaml:"file"`
	Rows     int    `yaml:"rows"`
	Checksum string `yaml:"blake2b_256"`
}

// NewManifest creates an empty manifest for the given run.
func NewManifest(runID string) *Manifest {
	return &Manifest{RunID: runID}
}

// AddTable records one written table.
func (m *Manifest) AddTable(file string, rows int, checksum string) {
	m.Tables = append(m.Tables, ManifestEntry{File: file, Rows: rows, Checksum: checksum})
}

// WriteFile serializes the manifest as YAML.
func (m *Manifest) WriteFile(path string) error {
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// tableDigest hashes the uncompressed bytes of a table as it is written.
type tableDigest struct {
	h hash.Hash
}

func newTableDigest() *tableDigest {
	h, _ := blake2b.New256(nil) // only errors with a key longer than 64 bytes
	return &tableDigest{h: h}
}

func (d *tableDigest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum returns the hex-encoded digest of everything written so far.
func (d *tableDigest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}
