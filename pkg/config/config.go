package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/offers-engine/pkg/enums"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "OFFERS_APP_ENV"
	EnvLogLevel = "OFFERS_LOG_LEVEL"
)

type Config struct {
	App    AppConfig
	Engine EngineConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Engine.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OFFERS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"OFFERS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OFFERS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type EngineConfig struct {
	DefaultPriceTier string `envconfig:"OFFERS_DEFAULT_PRICE_TIER" default:"retail"`
}

func (e EngineConfig) validate() error {
	if _, err := enums.ParsePriceTier(e.DefaultPriceTier); err != nil {
		return fmt.Errorf("invalid OFFERS_DEFAULT_PRICE_TIER: %w", err)
	}
	return nil
}

// PriceTier returns the configured default tier.
func (e EngineConfig) PriceTier() enums.PriceTier {
	tier, err := enums.ParsePriceTier(e.DefaultPriceTier)
	if err != nil {
		return enums.PriceTierRetail
	}
	return tier
}
