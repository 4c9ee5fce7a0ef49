package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIPort int `mapstructure:"apiPort"`

	DatabaseType            string `mapstructure:"databaseType"` // "sqlite" or "postgres"
	DatabasePath            string `mapstructure:"databasePath"`
	DatabaseHost            string `mapstructure:"databaseHost"`
	DatabasePort            string `mapstructure:"databasePort"`
	DatabaseName            string `mapstructure:"databaseName"`
	DatabaseUser            string `mapstructure:"databaseUser"`
	DatabasePassword        string `mapstructure:"databasePassword"`
	DatabaseSSLMode         string `mapstructure:"databaseSSLMode"`
	DatabaseMaxConns        int    `mapstructure:"databaseMaxConns"`
	DatabaseMaxIdle         int    `mapstructure:"databaseMaxIdle"`
	DatabaseConnMaxLifetime string `mapstructure:"databaseConnMaxLifetime"`

	SessionSecret   string   `mapstructure:"sessionSecret"`
	SessionTTLHours int      `mapstructure:"sessionTTLHours"`
	AllowedOrigins  []string `mapstructure:"allowedOrigins"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(path); statErr == nil {
				// File exists but could not be parsed
				return nil, err
			}
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 8080
		log.Println("APIPort not specified, using default 8080")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/biodevices.db"
		log.Println("Database path not specified, using default data/biodevices.db")
	}
	if cfg.DatabaseSSLMode == "" {
		cfg.DatabaseSSLMode = "disable"
	}

	if cfg.SessionSecret == "" {
		// Good enough for local development; deployments set SESSIONSECRET.
		cfg.SessionSecret = "dev-insecure-secret"
		log.Println("Session secret not specified, using insecure development default")
	}
	if cfg.SessionTTLHours == 0 {
		cfg.SessionTTLHours = 24
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	return &cfg, nil
}
