// Package config holds runtime settings shared by the Galaxy binaries.
//
// Settings are resolved in three layers: DefaultConfig, then GALAXY_*
// environment variables (optionally loaded from a .env file), then
// command-line flags applied by each binary.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// Environment variable names.
const (
	EnvQuality    = "GALAXY_QUALITY"
	EnvDB         = "GALAXY_DB"
	EnvPrimary    = "GALAXY_PRIMARY"
	EnvLog        = "GALAXY_LOG"
	EnvFPS        = "GALAXY_FPS"
	EnvCellWidth  = "GALAXY_CELL_WIDTH"
	EnvCellHeight = "GALAXY_CELL_HEIGHT"
)

// Config holds configuration for the Galaxy hosts.
type Config struct {
	// Quality is the requested rendering quality: auto, low or normal.
	Quality galaxy.Quality `json:"quality"`

	// DBPath is the path to the SQLite settings database.
	DBPath string `json:"db_path"`

	// LogPath receives log output from the terminal host. Empty
	// discards logs so they do not corrupt the alt screen.
	LogPath string `json:"log_path"`

	// Primary is the accent color token value (hex, rgb() or HSL).
	Primary string `json:"primary"`

	// FPS is the host tick rate. The animator throttles below it.
	FPS int `json:"fps"`

	// CellWidth and CellHeight are the logical pixels covered by one
	// terminal cell.
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".galaxy", "galaxy.db")

	return Config{
		Quality:    galaxy.QualityAuto,
		DBPath:     dbPath,
		FPS:        60,
		CellWidth:  8,
		CellHeight: 16,
	}
}

// LoadEnv loads the given .env files into the process environment and
// overlays GALAXY_* variables onto cfg. Missing files are ignored.
// Variables already set in the environment win over .env entries.
func LoadEnv(cfg Config, files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if v, ok := lookup(EnvQuality); ok {
		q, err := galaxy.ParseQuality(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvQuality, err)
		}
		cfg.Quality = q
	}
	if v, ok := lookup(EnvDB); ok {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLog); ok {
		cfg.LogPath = v
	}
	if v, ok := lookup(EnvPrimary); ok {
		cfg.Primary = v
	}
	if v, ok := lookup(EnvFPS); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFPS, err)
		}
		cfg.FPS = n
	}
	var err error
	if cfg.CellWidth, err = floatEnv(EnvCellWidth, cfg.CellWidth); err != nil {
		return cfg, err
	}
	if cfg.CellHeight, err = floatEnv(EnvCellHeight, cfg.CellHeight); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EnvFileArg finds the value of an --env flag in args before flag
// parsing, so the file can seed the flag defaults. It accepts the
// "-env", "--env" and "=" forms; the last occurrence wins.
func EnvFileArg(args []string, def string) string {
	path := def
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "env" {
			continue
		}
		if hasValue {
			path = value
		} else if i+1 < len(args) {
			i++
			path = args[i]
		}
	}
	return path
}

// Validate reports settings the hosts cannot run with.
func (c Config) Validate() error {
	if _, err := galaxy.ParseQuality(string(c.Quality)); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %gx%g", c.CellWidth, c.CellHeight)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	return nil
}

// Tokens returns the style tokens the animator reads its accent from.
func (c Config) Tokens() galaxy.TokenMap {
	return galaxy.TokenMap{galaxy.PrimaryToken: c.Primary}
}

// EnsureDBDir creates the database's parent directory.
func (c Config) EnsureDBDir() error {
	dir := filepath.Dir(c.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func floatEnv(key string, def float64) (float64, error) {
	v, ok := lookup(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
