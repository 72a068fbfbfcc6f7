// Package config loads and validates the ETL run configuration from a
// YAML file. Every knob has a default, so an empty file is a valid
// configuration that processes the standard dataset layout from the
// current directory.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Defaults applied by Load when the file leaves a field unset.
const (
	DefaultMetadataFile = "tmdb_5000_movies.csv"
	DefaultCreditsFile  = "tmdb_5000_credits.csv"
	DefaultOutputDir    = "out"
	DefaultLogLevel     = "info"
)

// SourceConfig selects where the input tables are read from. Kind
// "dir" reads from the local filesystem; kind "s3" reads from an S3
// bucket under an optional key prefix.
type SourceConfig struct {
	Kind   string `yaml:"kind" validate:"oneof=dir s3"`
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// SinkConfig selects where the output tables are written. Kind "dir"
// writes CSV files into a directory, atomically replacing any previous
// run. Kind "postgres" loads the tables into a Postgres schema.
type SinkConfig struct {
	Kind     string `yaml:"kind" validate:"oneof=dir postgres"`
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
	DSN      string `yaml:"dsn"`
	Schema   string `yaml:"schema"`
}

// Neo4jConfig holds the connection settings for the optional graph
// database import step.
type Neo4jConfig struct {
	URI       string `yaml:"uri"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	BatchSize int    `yaml:"batch_size" validate:"omitempty,min=1,max=100000"`
}

// Config is the full run configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Sink   SinkConfig   `yaml:"sink"`
	Neo4j  Neo4jConfig  `yaml:"neo4j"`

	MetadataFile string `yaml:"metadata_file"`
	CreditsFile  string `yaml:"credits_file"`

	MaxCast                int `yaml:"max_cast" validate:"omitempty,min=0,max=1000"`
	SimilarityThreshold    int `yaml:"similarity_threshold" validate:"omitempty,min=0"`
	CollaborationThreshold int `yaml:"collaboration_threshold" validate:"omitempty,min=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration an empty file resolves to.
func Default() *Config {
	return &Config{
		Source:                 SourceConfig{Kind: "dir", Dir: "."},
		Sink:                   SinkConfig{Kind: "dir", Dir: DefaultOutputDir},
		Neo4j:                  Neo4jConfig{Database: "neo4j", BatchSize: 1000},
		MetadataFile:           DefaultMetadataFile,
		CreditsFile:            DefaultCreditsFile,
		MaxCast:                10,
		SimilarityThreshold:    2,
		CollaborationThreshold: 1,
		LogLevel:               DefaultLogLevel,
	}
}

// Load reads a YAML configuration file, fills defaults, and validates
// the result. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields the file set to their zero
// value. Thresholds are left alone: zero is a meaningful setting there.
func (c *Config) fillDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = "dir"
	}
	if c.Source.Kind == "dir" && c.Source.Dir == "" {
		c.Source.Dir = "."
	}
	if c.Sink.Kind == "" {
		c.Sink.Kind = "dir"
	}
	if c.Sink.Kind == "dir" && c.Sink.Dir == "" {
		c.Sink.Dir = DefaultOutputDir
	}
	if c.MetadataFile == "" {
		c.MetadataFile = DefaultMetadataFile
	}
	if c.CreditsFile == "" {
		c.CreditsFile = DefaultCreditsFile
	}
	if c.Neo4j.Database == "" {
		c.Neo4j.Database = "neo4j"
	}
	if c.Neo4j.BatchSize == 0 {
		c.Neo4j.BatchSize = 1000
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks structural constraints and the cross-field rules the
// struct tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	if c.Source.Kind == "s3" && c.Source.Bucket == "" {
		return errors.New("source: s3 source requires a bucket")
	}
	if c.Sink.Kind == "postgres" && c.Sink.DSN == "" {
		return errors.New("sink: postgres sink requires a dsn")
	}
	if c.MetadataFile == c.CreditsFile {
		return errors.New("metadata_file and credits_file must differ")
	}
	return nil
}

// formatValidationError converts validator errors to a more
// user-friendly format.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
