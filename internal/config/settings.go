package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/keshon/lvc/internal/fs"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override config.toml.
const (
	EnvDebug         = "LVC_DEBUG"
	EnvDefaultBranch = "LVC_DEFAULT_BRANCH"
	EnvHash          = "LVC_HASH"
)

// Settings is the content of config.toml.
type Settings struct {
	ID   string       `toml:"id"`
	Core CoreSettings `toml:"core"`
	Log  LogSettings  `toml:"log"`
}

// CoreSettings are fixed when the repository is created.
type CoreSettings struct {
	Hash          string `toml:"hash"`
	DefaultBranch string `toml:"default_branch"`
	Compress      bool   `toml:"compress"`
}

type LogSettings struct {
	Level string `toml:"level"`
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() *Settings {
	return &Settings{
		Core: CoreSettings{
			Hash:          DefaultHash,
			DefaultBranch: DefaultBranch,
		},
		Log: LogSettings{Level: "warn"},
	}
}

// ParseError reports a malformed config.toml.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadSettings reads config.toml at path. A missing file yields defaults.
func LoadSettings(fsys fs.FS, path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	s.fillDefaults()
	return s, nil
}

// SaveSettings writes s to path as TOML.
func SaveSettings(fsys fs.FS, path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return fs.WriteFileAtomic(fsys, path, data)
}

// ApplyEnv overlays environment variables on s. lookup is usually os.LookupEnv.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDebug); ok {
		if on, err := strconv.ParseBool(v); err != nil || on {
			s.Log.Level = "debug"
		}
	}
	if v, ok := lookup(EnvDefaultBranch); ok && strings.TrimSpace(v) != "" {
		s.Core.DefaultBranch = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvHash); ok && strings.TrimSpace(v) != "" {
		s.Core.Hash = strings.ToLower(strings.TrimSpace(v))
	}
}

// LogLevel maps the configured level name to a slog level.
func (s *Settings) LogLevel() slog.Level {
	switch strings.ToLower(s.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (s *Settings) fillDefaults() {
	d := DefaultSettings()
	if s.Core.Hash == "" {
		s.Core.Hash = d.Core.Hash
	}
	if s.Core.DefaultBranch == "" {
		s.Core.DefaultBranch = d.Core.DefaultBranch
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
}
