package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. CT_DATABASE_HOST
const EnvPrefix = "CT"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads .env, then configs/<env>.yaml, then CT_ environment overrides
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = loadDotEnvFile(DotEnvPaths)

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	return load(v, env)
}

// LoadFromViper decodes configuration from a prepared viper instance
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	return load(v, env)
}

func load(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	normalizeDurations(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in paths
func loadDotEnvFile(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return errors.New("no .env file found in search paths")
}

// defaults holds every key with its default so environment overrides resolve
var defaults = map[string]any{
	"server.host":              "0.0.0.0",
	"server.port":              8080,
	"server.readTimeout":       15,
	"server.writeTimeout":      0,
	"server.idleTimeout":       60,
	"server.readHeaderTimeout": 10,
	"server.shutdownTimeout":   10,

	"database.driver":          "postgres",
	"database.host":            "",
	"database.port":            "5432",
	"database.username":        "",
	"database.password":        "",
	"database.database":        "",
	"database.sslMode":         "disable",
	"database.maxOpenConns":    25,
	"database.maxIdleConns":    10,
	"database.connMaxLifetime": 30,
	"database.connMaxIdleTime": 15,
	"database.queryTimeout":    5,
	"database.retryAttempts":   3,
	"database.retryDelay":      1,
	"database.logLevel":        "warn",

	"logger.level":  "info",
	"logger.format": "json",

	"countdown.defaultGranularityMs": 1000,
	"countdown.emitZeroTick":         false,
	"countdown.maxActive":            1000,
	"countdown.persistTicks":         false,
	"countdown.eventQueueSize":       1024,
	"countdown.subscriberBuffer":     16,
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// bindEnvKeys binds camelCase keys to their upper snake case variables,
// e.g. database.maxOpenConns to CT_DATABASE_MAX_OPEN_CONNS
func bindEnvKeys(v *viper.Viper) {
	for key := range defaults {
		_ = v.BindEnv(key, EnvPrefix+"_"+envKey(key))
	}
}

// durationKeys are read as bare numbers in the unit noted on their Config field
var durationKeys = []string{
	"server.readTimeout",
	"server.writeTimeout",
	"server.idleTimeout",
	"server.readHeaderTimeout",
	"server.shutdownTimeout",
	"database.connMaxLifetime",
	"database.connMaxIdleTime",
	"database.queryTimeout",
	"database.retryDelay",
}

// normalizeDurations turns numeric strings from the environment into integers,
// which the duration decoder would otherwise reject for lacking a unit
func normalizeDurations(v *viper.Viper) {
	for _, key := range durationKeys {
		if n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
			v.Set(key, n)
		}
	}
}

// envKey converts "database.maxOpenConns" to "DATABASE_MAX_OPEN_CONNS"
func envKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && key[i-1] != '.' {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}

// getEnvironment determines the environment from CT_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts the raw numbers read for duration fields to time.Duration
func processDurations(config *Config) {
	config.Server.ReadTimeout = toDuration(config.Server.ReadTimeout, time.Second)
	config.Server.WriteTimeout = toDuration(config.Server.WriteTimeout, time.Second)
	config.Server.IdleTimeout = toDuration(config.Server.IdleTimeout, time.Second)
	config.Server.ReadHeaderTimeout = toDuration(config.Server.ReadHeaderTimeout, time.Second)
	config.Server.ShutdownTimeout = toDuration(config.Server.ShutdownTimeout, time.Second)

	config.Database.ConnMaxLifetime = toDuration(config.Database.ConnMaxLifetime, time.Minute)
	config.Database.ConnMaxIdleTime = toDuration(config.Database.ConnMaxIdleTime, time.Minute)
	config.Database.QueryTimeout = toDuration(config.Database.QueryTimeout, time.Second)
	config.Database.RetryDelay = toDuration(config.Database.RetryDelay, time.Second)
}

// bareNumberLimit separates bare numbers, which decode as nanoseconds, from real durations
const bareNumberLimit = time.Duration(1 << 20)

// toDuration scales a bare number by unit; values written with a unit ("1m") are kept
func toDuration(raw time.Duration, unit time.Duration) time.Duration {
	if raw > 0 && raw < bareNumberLimit {
		return raw * unit
	}
	return raw
}
