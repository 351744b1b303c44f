package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type UploadConfig struct {
	Dir string `mapstructure:"dir"`
}

type DuesConfig struct {
	// Expression evaluated per association to compute the yearly allocation.
	// "Members" is bound to the association member count.
	AllocationFormula string `mapstructure:"allocation_formula"`
	// Smallest amount a manual contribution entry may carry, in shillings.
	MinimumPayment int64 `mapstructure:"minimum_payment"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Dues     DuesConfig     `mapstructure:"dues"`
}

const (
	DefaultAllocationFormula = "Members * 500 * 12"
	DefaultMinimumPayment    = 500
	DefaultUploadDir         = "static/uploads"
)

var (
	App    *Config
	JwtKey []byte
	once   sync.Once
)

// Load reads config.yaml from the working directory (if present) with
// environment overrides, e.g. ASAPCUT_DATABASE_URL, ASAPCUT_REDIS_ADDR.
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		v.SetEnvPrefix("ASAPCUT")
		v.AutomaticEnv()

		v.SetDefault("server.port", 8080)
		v.SetDefault("server.mode", "debug")
		v.SetDefault("jwt.expire_hours", 24)
		v.SetDefault("upload.dir", DefaultUploadDir)
		v.SetDefault("dues.allocation_formula", DefaultAllocationFormula)
		v.SetDefault("dues.minimum_payment", DefaultMinimumPayment)

		if readErr := v.ReadInConfig(); readErr != nil {
			// config.yaml is optional, env vars alone are enough
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		App = &c
		JwtKey = []byte(c.JWT.Secret)
	})

	if err != nil {
		return nil, err
	}
	return App, nil
}

// AllocationFormula returns the configured allocation expression, falling
// back to the default when the config has not been loaded (tests).
func AllocationFormula() string {
	if App != nil && App.Dues.AllocationFormula != "" {
		return App.Dues.AllocationFormula
	}
	return DefaultAllocationFormula
}

// MinimumPayment returns the configured floor for manual entries.
func MinimumPayment() int64 {
	if App != nil && App.Dues.MinimumPayment > 0 {
		return App.Dues.MinimumPayment
	}
	return DefaultMinimumPayment
}

// UploadDir returns the root directory for stored logos, reports and
// contribution files.
func UploadDir() string {
	if App != nil && App.Upload.Dir != "" {
		return App.Upload.Dir
	}
	return DefaultUploadDir
}
