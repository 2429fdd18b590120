// Package config loads gantt settings from defaults, an optional YAML file
// and GANTT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyDB           = "db"
	KeyResource     = "resource"
	KeyWindowDays   = "window_days"
	KeyLocation     = "location"
	KeyStrictColors = "strict_colors"
	KeyLogFile      = "log_file"
	KeyCellWidth    = "cell_width"
)

// Config holds resolved application settings.
type Config struct {
	DBPath string
	// Resource is the resource the bare command opens, if any.
	Resource   string
	WindowDays int
	Location   *time.Location
	// StrictColors makes unmapped project colors fatal while rendering.
	StrictColors bool
	// LogFile receives use-case logs. Empty disables logging.
	LogFile   string
	CellWidth int
}

// Defaults returns the configuration used when nothing is set.
func Defaults() map[string]any {
	return map[string]any{
		KeyDB:           "~/.gantt/gantt.db",
		KeyResource:     "",
		KeyWindowDays:   28,
		KeyLocation:     "Local",
		KeyStrictColors: false,
		KeyLogFile:      "",
		KeyCellWidth:    3,
	}
}

// Load resolves the configuration. configDir overrides the directories
// searched for config.yaml; GANTT_CONFIG_PATH does the same from the
// environment. A missing file is not an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GANTT")
	v.AutomaticEnv()

	switch {
	case configDir != "":
		v.AddConfigPath(configDir)
	case os.Getenv("GANTT_CONFIG_PATH") != "":
		v.AddConfigPath(os.Getenv("GANTT_CONFIG_PATH"))
	default:
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gantt"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Resource:     v.GetString(KeyResource),
		WindowDays:   v.GetInt(KeyWindowDays),
		StrictColors: v.GetBool(KeyStrictColors),
		CellWidth:    v.GetInt(KeyCellWidth),
	}

	var err error
	if cfg.DBPath, err = expand(v.GetString(KeyDB)); err != nil {
		return Config{}, err
	}
	if cfg.LogFile, err = expand(v.GetString(KeyLogFile)); err != nil {
		return Config{}, err
	}

	if cfg.Location, err = time.LoadLocation(v.GetString(KeyLocation)); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLocation, err)
	}
	if cfg.WindowDays < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", KeyWindowDays, cfg.WindowDays)
	}
	if cfg.CellWidth < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", KeyCellWidth, cfg.CellWidth)
	}
	return cfg, nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return out, nil
}
