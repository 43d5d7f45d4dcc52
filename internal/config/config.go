package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type StoreConfig struct {
	// Driver selects the record-store backend: file, sqlite or memory.
	Driver       string `mapstructure:"driver"`
	Dir          string `mapstructure:"dir"`
	ProjectsFile string `mapstructure:"projects_file"`
	UsersFile    string `mapstructure:"users_file"`
	SQLitePath   string `mapstructure:"sqlite_path"`
}

type SessionConfig struct {
	CookieName     string `mapstructure:"cookie_name"`
	CookieTTLHours int    `mapstructure:"cookie_ttl_hours"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. Environment variables prefixed PM_ override file values.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("store.driver", "file")
		v.SetDefault("store.dir", "./data")
		v.SetDefault("store.projects_file", "projects.json")
		v.SetDefault("store.users_file", "users.json")
		v.SetDefault("store.sqlite_path", "./data/records.db")
		v.SetDefault("session.cookie_name", "pm_session")
		v.SetDefault("session.cookie_ttl_hours", 720)
		v.SetDefault("log.level", "info")

		v.SetEnvPrefix("PM")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
