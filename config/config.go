package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/chksum/color"
	"github.com/byte4ever/chksum/source"
)

// EnvPath names the environment variable consulted when no
// --config flag is given.
const EnvPath = "CHKSUM_CONFIG"

// ErrUnsupportedFormat is returned for config files whose
// extension is neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format holds the line templates used by the printer.
type Format struct {
	Success string `json:"success" yaml:"success"`
	Failure string `json:"failure" yaml:"failure"`
}

// File mirrors the on-disk layout. Empty fields keep the
// default.
type File struct {
	Color     string `json:"color"     yaml:"color"`
	Jobs      int    `json:"jobs"      yaml:"jobs"`
	Directory string `json:"directory" yaml:"directory"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	Format    Format `json:"format"    yaml:"format"`
}

// Config is the validated configuration.
type Config struct {
	Color     color.Mode
	Jobs      int
	Directory source.DirPolicy
	LogLevel  slog.Level
	Format    Format
}

// Default returns the built-in configuration. Its Format is
// empty so the printer's own templates apply.
func Default() Config {
	return Config{
		Color:     color.ModeAuto,
		Jobs:      0,
		Directory: source.DirContent,
		LogLevel:  slog.LevelWarn,
	}
}

// Load reads the file at path and applies it on top of
// Default.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	var fi File

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &fi)
	case ".json":
		err = json.Unmarshal(raw, &fi)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg, err := fi.Apply(Default())
	if err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return cfg, nil
}

// Apply overlays the non-empty fields of fi onto base.
func (fi File) Apply(base Config) (Config, error) {
	cfg := base

	if fi.Color != "" {
		md, err := color.ParseMode(fi.Color)
		if err != nil {
			return Config{}, err
		}

		cfg.Color = md
	}

	if fi.Jobs < 0 {
		return Config{}, fmt.Errorf("jobs must be >= 0, got %d", fi.Jobs)
	}

	if fi.Jobs > 0 {
		cfg.Jobs = fi.Jobs
	}

	if fi.Directory != "" {
		pol, err := source.ParseDirPolicy(fi.Directory)
		if err != nil {
			return Config{}, err
		}

		cfg.Directory = pol
	}

	if fi.LogLevel != "" {
		lvl, err := ParseLevel(fi.LogLevel)
		if err != nil {
			return Config{}, err
		}

		cfg.LogLevel = lvl
	}

	if fi.Format.Success != "" {
		if err := checkTemplate(fi.Format.Success); err != nil {
			return Config{}, err
		}

		cfg.Format.Success = fi.Format.Success
	}

	if fi.Format.Failure != "" {
		if err := checkTemplate(fi.Format.Failure); err != nil {
			return Config{}, err
		}

		cfg.Format.Failure = fi.Format.Failure
	}

	return cfg, nil
}

// ParseLevel parses a slog level name such as "debug" or
// "warn".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("parsing log level: %w", err)
	}

	return lvl, nil
}

// Level is a slog.Level usable as a command-line flag.
type Level slog.Level

func (l Level) String() string {
	return slog.Level(l).String()
}

// Set parses s with ParseLevel.
func (l *Level) Set(s string) error {
	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}

	*l = Level(lvl)

	return nil
}

// Type names the flag value in help output.
func (*Level) Type() string {
	return "level"
}

func checkTemplate(tpl string) error {
	if _, err := fasttemplate.NewTemplate(tpl, "{", "}"); err != nil {
		return fmt.Errorf("parsing format template %q: %w", tpl, err)
	}

	return nil
}
