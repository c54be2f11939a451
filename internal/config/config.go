package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // empty = ~/.local/share/fator/fator.db
}

type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"` // debug|info|warn|error
	File    string `mapstructure:"file"`  // empty = ~/.local/state/fator/fator.log
}

type NotifyConfig struct {
	OnSelect bool `mapstructure:"on_select"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // default|table|json|csv|compact|quiet
	Color  bool   `mapstructure:"color"`
}

type PickerConfig struct {
	StayOpen bool `mapstructure:"stay_open"`
}

type Config struct {
	Locale     string         `mapstructure:"locale"`
	Theme      string         `mapstructure:"theme"`
	LabelsFile string         `mapstructure:"labels_file"`
	Database   DatabaseConfig `mapstructure:"database"`
	Log        LogConfig      `mapstructure:"log"`
	Notify     NotifyConfig   `mapstructure:"notify"`
	Output     OutputConfig   `mapstructure:"output"`
	Picker     PickerConfig   `mapstructure:"picker"`
}

func Default() Config {
	return Config{
		Locale: "pt_BR",
		Theme:  "default",
		Log: LogConfig{
			Enabled: true,
			Level:   "info",
		},
		Output: OutputConfig{
			Format: "default",
			Color:  true,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fator", "config.yaml"), nil
}

// Load reads the default config file; a missing file is not an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path, then applies FATOR_* environment overrides
// (including those set by a .env file in the working directory).
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	_ = godotenv.Load() // ok if missing

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("FATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("locale", cfg.Locale)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("labels_file", cfg.LabelsFile)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("log.enabled", cfg.Log.Enabled)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("notify.on_select", cfg.Notify.OnSelect)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("picker.stay_open", cfg.Picker.StayOpen)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	return cfg, nil
}

func dataDir(kind string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", kind, "fator")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DatabasePath resolves the SQLite file, creating the default directory if needed.
func (c Config) DatabasePath() (string, error) {
	if p := strings.TrimSpace(c.Database.Path); p != "" {
		return p, nil
	}
	dir, err := dataDir("share")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fator.db"), nil
}

// LogPath resolves the log file, creating the default directory if needed.
func (c Config) LogPath() (string, error) {
	if p := strings.TrimSpace(c.Log.File); p != "" {
		return p, nil
	}
	dir, err := dataDir("state")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fator.log"), nil
}
