package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKS"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":       "server.port",
	"log-level":  "server.log_level",
	"log-format": "server.log_format",
	"base-path":  "server.base_path",
	"store":      "store.backend",
	"tasks-file": "store.path",
	"database":   "database.url",
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit config file. When empty, tasks.{yaml,json,toml}
	// is looked up in the working directory and /etc/tasks-api, and a missing
	// file is not an error.
	ConfigFile string
	// Flags, when set, override every other source for the flags that were
	// actually changed on the command line.
	Flags *pflag.FlagSet
}

// Load configuration from defaults, a config file, environment variables, and
// flags, in increasing order of precedence.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("tasks")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/tasks-api")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.label", "Go/chi")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", "tasks.json")

	// Registered so AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("database.url", "")
	v.SetDefault("database.collection", "default")
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Store.Backend == BackendPostgres && cfg.Database.URL == "" {
		return errors.New("config validation failed: database.url is required when store.backend is postgres")
	}
	cfg.Server.BasePath = strings.TrimRight(cfg.Server.BasePath, "/")
	return nil
}
