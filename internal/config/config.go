package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GITREWIND_CHROME_ROWS.
const EnvPrefix = "GITREWIND"

// Config holds application configuration
type Config struct {
	// Repository settings
	RepoPath string `mapstructure:"repo_path"`

	// Commands
	GitBin       string   `mapstructure:"git_bin"`       // git executable
	CountCommand []string `mapstructure:"count_command"` // line counter fed by git log

	// Display settings
	ChromeRows    int  `mapstructure:"chrome_rows"` // rows used by header, borders and status bar
	ConfirmReset  bool `mapstructure:"confirm_reset"`
	RestoreOnExit bool `mapstructure:"restore_on_exit"`

	// Logging
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		RepoPath:      ".",
		GitBin:        "git",
		CountCommand:  []string{"wc", "-l"},
		ChromeRows:    5,
		ConfirmReset:  true,
		RestoreOnExit: true,
		LogLevel:      "info",
	}
}

// Load reads configuration from path, or from the default location when path
// is empty, and applies environment overrides on top of Default().
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	} else if dir, err := defaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// From the environment count_command arrives as one string, e.g. "wc -l".
	if s, ok := v.Get("count_command").(string); ok {
		cfg.CountCommand = splitCommand(s)
	}

	// GIT_BIN_PATH names the directory holding the git binary.
	if dir := os.Getenv("GIT_BIN_PATH"); dir != "" {
		cfg.GitBin = filepath.Join(dir, "git")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GitBin) == "" {
		return errors.New("git_bin must not be empty")
	}
	if len(c.CountCommand) == 0 || strings.TrimSpace(c.CountCommand[0]) == "" {
		return errors.New("count_command must name a program")
	}
	if c.ChromeRows < 0 {
		return errors.Newf("chrome_rows must not be negative, got %d", c.ChromeRows)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Newf("invalid log_level %q: must be one of debug, info, warn, error", s)
}

// splitCommand splits a command line on whitespace and commas.
func splitCommand(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("repo_path", d.RepoPath)
	v.SetDefault("git_bin", d.GitBin)
	v.SetDefault("count_command", d.CountCommand)
	v.SetDefault("chrome_rows", d.ChromeRows)
	v.SetDefault("confirm_reset", d.ConfirmReset)
	v.SetDefault("restore_on_exit", d.RestoreOnExit)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".config", "gitrewind"), nil
}
