// Package config loads runtime settings from the embedded defaults and the
// environment.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed base.yaml
var baseConfig []byte

const envPrefix = "STOREFRONT"

type Config struct {
	HTTP            HTTPConfig    `mapstructure:"http"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout" validate:"gt=0"`
	Remote          RemoteConfig  `mapstructure:"remote"`
	LocationID      string        `mapstructure:"location-id" validate:"required"`
	Catalog         CatalogConfig `mapstructure:"catalog"`
	Cart            CartConfig    `mapstructure:"cart"`
	Session         SessionConfig `mapstructure:"session"`
	Redis           RedisConfig   `mapstructure:"redis"`
	Log             LogConfig     `mapstructure:"log"`
	FakeAPI         FakeAPIConfig `mapstructure:"fakeapi"`
}

type HTTPConfig struct {
	Addr string     `mapstructure:"addr" validate:"required"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type RemoteConfig struct {
	BaseURL string        `mapstructure:"base-url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type CatalogConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type CartConfig struct {
	Store string        `mapstructure:"store" validate:"oneof=memory redis"`
	TTL   time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr" validate:"required_if=Enabled true"`
	DB   int    `mapstructure:"db" validate:"gte=0"`

	Enabled bool `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type FakeAPIConfig struct {
	Addr string `mapstructure:"addr"`
}

// FromEnv builds Config from base.yaml, overridden by STOREFRONT_*
// environment variables (STOREFRONT_REMOTE_BASE_URL, STOREFRONT_CART_STORE...).
func FromEnv() (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(baseConfig)); err != nil {
		return Config{}, fmt.Errorf("read base config: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Redis.Enabled = cfg.Cart.Store == "redis"

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
