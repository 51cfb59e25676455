package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/mnemo/internal/constants"
)

// Auth modes: open skips the token check when no token is configured (local
// dev); enforced rejects every request instead.
const (
	AuthModeOpen     = "open"
	AuthModeEnforced = "enforced"
)

// Storage backends behind the same Provider interface.
const (
	BackendJSONL    = "jsonl"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	ListenAddr string        `yaml:"listen_addr" mapstructure:"listen_addr"`
	CORSOrigin string        `yaml:"cors_origin" mapstructure:"cors_origin"`
	Storage    StorageConfig `yaml:"storage" mapstructure:"storage"`
	Auth       AuthConfig    `yaml:"auth" mapstructure:"auth"`
	OpenAI     OpenAIConfig  `yaml:"openai" mapstructure:"openai"`
	Log        LogConfig     `yaml:"log" mapstructure:"log"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend" mapstructure:"backend"`
	EventsFile  string `yaml:"events_file" mapstructure:"events_file"`
	DiaryFile   string `yaml:"diary_file" mapstructure:"diary_file"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn" mapstructure:"postgres_dsn"`
	ScanPolicy  string `yaml:"scan_policy" mapstructure:"scan_policy"` // abort | skip
}

type AuthConfig struct {
	Token string `yaml:"token" mapstructure:"token"`
	Mode  string `yaml:"mode" mapstructure:"mode"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

func setDefaults() {
	viper.SetDefault("listen_addr", constants.DefaultListenAddr)
	viper.SetDefault("cors_origin", constants.DefaultCORSOrigin)
	viper.SetDefault("storage.backend", BackendJSONL)
	viper.SetDefault("storage.events_file", constants.DefaultEventsFile)
	viper.SetDefault("storage.diary_file", constants.DefaultDiaryFile)
	viper.SetDefault("storage.sqlite_path", "/var/lib/mnemo/mnemo.db")
	viper.SetDefault("storage.postgres_dsn", "")
	viper.SetDefault("storage.scan_policy", "abort")
	viper.SetDefault("auth.token", "")
	viper.SetDefault("auth.mode", AuthModeOpen)
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", constants.DefaultModel)
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("log.debug", false)
	viper.SetDefault("log.dir", "")
}

// Load reads configuration from the given file (or the default search
// paths), layered under MNEMO_* environment variables. The result is
// process-wide state initialized once at startup and passed explicitly into
// each component.
func Load(path string) (*Config, error) {
	viper.Reset()
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, constants.AppName))
		}
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", constants.AppName))
		viper.AddConfigPath(filepath.Join("/etc", constants.AppName))
	}

	viper.SetEnvPrefix(strings.ToUpper(constants.AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicitly requested file must exist; otherwise a missing
			// config just means defaults + environment
			if path != "" || !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// OPENAI_API_KEY is honored directly for compatibility with the usual
	// OpenAI tooling environment
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSONL, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("config: storage.backend %q is invalid (must be jsonl, sqlite, or postgres)", c.Storage.Backend)
	}

	if c.Storage.Backend == BackendJSONL {
		if c.Storage.EventsFile == "" || c.Storage.DiaryFile == "" {
			return fmt.Errorf("config: storage.events_file and storage.diary_file are required for the jsonl backend")
		}
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("config: storage.sqlite_path is required for the sqlite backend")
	}
	if c.Storage.Backend == BackendPostgres && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("config: storage.postgres_dsn is required for the postgres backend")
	}

	switch c.Storage.ScanPolicy {
	case "abort", "skip":
	default:
		return fmt.Errorf("config: storage.scan_policy %q is invalid (must be abort or skip)", c.Storage.ScanPolicy)
	}

	switch c.Auth.Mode {
	case AuthModeOpen, AuthModeEnforced:
	default:
		return fmt.Errorf("config: auth.mode %q is invalid (must be open or enforced)", c.Auth.Mode)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr is required")
	}

	return nil
}
