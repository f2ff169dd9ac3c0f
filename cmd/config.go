package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/horizon"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by the application. The API key of the
// assistant, GEMINI_API_KEY, is read by the genai client itself.
const (
	EnvConfig      = "HORIZON_CONFIG"
	EnvWorkspace   = "HORIZON_WORKSPACE"
	EnvVerbose     = "HORIZON_VERBOSE"
	EnvDatabaseURL = "DATABASE_URL"
)

// DefaultConfigFile is read when neither the -config flag nor HORIZON_CONFIG
// are set. It is fine if it does not exist.
const DefaultConfigFile = "horizon.toml"

// Config is the content of horizon.toml.
type Config struct {
	Data      DataConfig    `toml:"data"`
	Workspace string        `toml:"workspace"`
	History   HistoryConfig `toml:"history"`
	Server    ServerConfig  `toml:"server"`
	Goals     []GoalConfig  `toml:"goals"`
}

// DataConfig selects where the dataset sheets are read.
type DataConfig struct {
	Source   string `toml:"source"` // dir, xlsx or sheets
	Path     string `toml:"path"`
	SheetID  string `toml:"sheet_id"`
	CacheDir string `toml:"cache_dir"`
}

// HistoryConfig selects where snapshots are kept. The database wins over the
// file when both are set.
type HistoryConfig struct {
	File        string `toml:"file"`
	DatabaseURL string `toml:"database_url"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// GoalConfig sets the target of a goal track.
type GoalConfig struct {
	Name   string  `toml:"name"`
	Target float64 `toml:"target"`
}

// Data sources.
const (
	SourceDir    = "dir"
	SourceXLSX   = "xlsx"
	SourceSheets = "sheets"
)

// DefaultConfig returns the configuration used without horizon.toml.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source: SourceDir,
			Path:   "data",
		},
		Workspace: "horizon.json",
		History: HistoryConfig{
			File: "history.jsonl",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// LoadConfig reads the configuration file at path on top of the defaults.
//
// An empty path means HORIZON_CONFIG, then horizon.toml; only the latter may
// be missing. HORIZON_WORKSPACE and DATABASE_URL override the file.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	optional := false
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, optional = DefaultConfigFile, true
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && optional:
	case err != nil:
		return nil, fmt.Errorf("could not read configuration: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("could not decode configuration %q: %w", path, err)
		}
	}

	if v := os.Getenv(EnvWorkspace); v != "" {
		config.Workspace = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		config.History.DatabaseURL = v
	}
	return config, nil
}

// Source returns the dataset source the configuration describes.
func (c *Config) Source() (horizon.Source, error) {
	switch strings.ToLower(c.Data.Source) {
	case "", SourceDir:
		return horizon.DirSource(c.Data.Path), nil
	case SourceXLSX:
		if c.Data.Path == "" {
			return nil, errors.New("xlsx source needs a [data] path")
		}
		return horizon.WorkbookSource{Path: c.Data.Path}, nil
	case SourceSheets:
		if c.Data.SheetID == "" {
			return nil, errors.New("sheets source needs a [data] sheet_id")
		}
		return horizon.SheetSource{SpreadsheetID: c.Data.SheetID, Client: horizon.DailyClient(c.Data.CacheDir)}, nil
	default:
		return nil, fmt.Errorf("unknown data source %q, want %s, %s or %s", c.Data.Source, SourceDir, SourceXLSX, SourceSheets)
	}
}

// Addr is the address the API server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
