package speech

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads speech configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("tts.provider") {
		cfg.Provider = viper.GetString("tts.provider")
	}
	if viper.IsSet("tts.default_voice") {
		cfg.DefaultVoice = viper.GetString("tts.default_voice")
	}
	if viper.IsSet("tts.default_format") {
		cfg.DefaultFormat = Format(viper.GetString("tts.default_format"))
	}
	if viper.IsSet("tts.default_quality") {
		cfg.DefaultQuality = Quality(viper.GetString("tts.default_quality"))
	}
	if viper.IsSet("tts.default_speed") {
		cfg.DefaultSpeed = viper.GetFloat64("tts.default_speed")
	}

	if viper.IsSet("tts.enable_caching") {
		cfg.EnableCaching = viper.GetBool("tts.enable_caching")
	}
	if viper.IsSet("tts.cache_expiration_days") {
		cfg.CacheExpirationDays = viper.GetInt("tts.cache_expiration_days")
	}

	if viper.IsSet("tts.cost_limits.daily_limit") {
		cfg.CostLimits.DailyLimit = viper.GetFloat64("tts.cost_limits.daily_limit")
	}
	if viper.IsSet("tts.cost_limits.monthly_limit") {
		cfg.CostLimits.MonthlyLimit = viper.GetFloat64("tts.cost_limits.monthly_limit")
	}
	if viper.IsSet("tts.cost_limits.per_request_limit") {
		cfg.CostLimits.PerRequestLimit = viper.GetFloat64("tts.cost_limits.per_request_limit")
	}

	cfg.OpenAI = loadOpenAIConfig()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid speech configuration: %w", err)
	}

	return cfg, nil
}

// loadOpenAIConfig loads OpenAI-specific configuration from Viper.
func loadOpenAIConfig() OpenAIConfig {
	cfg := DefaultConfig().OpenAI

	if viper.IsSet("tts.openai.api_key") {
		cfg.APIKey = viper.GetString("tts.openai.api_key")
	}
	if viper.IsSet("tts.openai.base_url") {
		cfg.BaseURL = viper.GetString("tts.openai.base_url")
	}
	if viper.IsSet("tts.openai.timeout") {
		if d, err := time.ParseDuration(viper.GetString("tts.openai.timeout")); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// SetDefaults sets default values in Viper for speech configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("tts.provider", defaults.Provider)
	viper.SetDefault("tts.default_voice", defaults.DefaultVoice)
	viper.SetDefault("tts.default_format", string(defaults.DefaultFormat))
	viper.SetDefault("tts.default_quality", string(defaults.DefaultQuality))
	viper.SetDefault("tts.default_speed", defaults.DefaultSpeed)

	viper.SetDefault("tts.enable_caching", defaults.EnableCaching)
	viper.SetDefault("tts.cache_expiration_days", defaults.CacheExpirationDays)

	viper.SetDefault("tts.cost_limits.daily_limit", defaults.CostLimits.DailyLimit)
	viper.SetDefault("tts.cost_limits.monthly_limit", defaults.CostLimits.MonthlyLimit)
	viper.SetDefault("tts.cost_limits.per_request_limit", defaults.CostLimits.PerRequestLimit)

	viper.SetDefault("tts.openai.timeout", defaults.OpenAI.Timeout.String())
}
