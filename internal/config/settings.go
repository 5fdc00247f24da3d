package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the runtime options of the serve command.
// Zero values are replaced by DefaultSettings when loaded from a file.
type Settings struct {
	Port     string        `yaml:"port"`
	BindAddr string        `yaml:"bind_addr"`
	Metrics  bool          `yaml:"metrics"`
	Sync     SyncSettings  `yaml:"sync"`
	Interval time.Duration `yaml:"interval"`
}

// SyncSettings describes where the birthday feed reads contacts from.
type SyncSettings struct {
	Mode     string `yaml:"mode"` // SourceModeLocal, SourceModeWeb or empty
	File     string `yaml:"file"`
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Reminder string `yaml:"reminder"` // ISO8601 duration, e.g. "-P1D"
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Port:     DefaultPort,
		BindAddr: LocalhostBindAddr,
		Metrics:  true,
		Interval: DefaultSyncInterval,
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
// An empty path returns the defaults. The result is not validated so that callers
// can apply overrides first; call Validate afterwards.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	slog.Debug(MsgSettingsLoad,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
		LogKeyMode, s.Sync.Mode,
	)
	return s, nil
}

// Validate checks the port range, the sync source and the interval.
func (s Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsValid, err)
	}
	if s.Interval < 0 {
		return fmt.Errorf("%s: %s", ErrSettingsValid, ErrInterval)
	}
	switch s.Sync.Mode {
	case SourceModeNone:
	case SourceModeLocal:
		if s.Sync.File == "" {
			return fmt.Errorf("%s: %s", ErrSettingsValid, ErrLocalPathEmpty)
		}
	case SourceModeWeb:
		if s.Sync.URL == "" {
			return fmt.Errorf("%s: %s", ErrSettingsValid, ErrWebURLEmpty)
		}
	default:
		return fmt.Errorf("%s: %s: %q", ErrSettingsValid, ErrModeUnsupport, s.Sync.Mode)
	}
	return nil
}

// ValidatePort checks that port is a number within MinPort..MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
