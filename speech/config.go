package speech

import (
	"fmt"
	"time"
)

// Speed bounds accepted by every provider.
const (
	SpeedMin = 0.25
	SpeedMax = 4.0
)

// Config contains all speech generation options.
type Config struct {
	Provider       string  `yaml:"provider" env:"CASTKIT_TTS_PROVIDER" envDefault:"openai"`
	DefaultVoice   string  `yaml:"default_voice" env:"CASTKIT_TTS_VOICE" envDefault:"alloy"`
	DefaultFormat  Format  `yaml:"default_format" env:"CASTKIT_TTS_FORMAT" envDefault:"mp3"`
	DefaultQuality Quality `yaml:"default_quality" env:"CASTKIT_TTS_QUALITY" envDefault:"medium"`
	DefaultSpeed   float64 `yaml:"default_speed" env:"CASTKIT_TTS_SPEED" envDefault:"1.0"`

	// Caching
	EnableCaching       bool `yaml:"enable_caching" env:"CASTKIT_TTS_CACHING" envDefault:"true"`
	CacheExpirationDays int  `yaml:"cache_expiration_days" env:"CASTKIT_TTS_CACHE_DAYS" envDefault:"30"`

	// Spend ceilings, separate from the summarization budget.
	CostLimits CostLimits `yaml:"cost_limits"`

	// Provider-specific configuration.
	OpenAI OpenAIConfig `yaml:"openai"`
}

// CostLimits are the TTS spend ceilings in currency units.
type CostLimits struct {
	DailyLimit      float64 `yaml:"daily_limit" env:"CASTKIT_TTS_DAILY_LIMIT" envDefault:"5.0"`
	MonthlyLimit    float64 `yaml:"monthly_limit" env:"CASTKIT_TTS_MONTHLY_LIMIT" envDefault:"50.0"`
	PerRequestLimit float64 `yaml:"per_request_limit" env:"CASTKIT_TTS_PER_REQUEST_LIMIT" envDefault:"0.50"`
}

// OpenAIConfig contains OpenAI speech API settings.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"CASTKIT_OPENAI_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"CASTKIT_OPENAI_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       ProviderOpenAI,
		DefaultVoice:   "alloy",
		DefaultFormat:  FormatMP3,
		DefaultQuality: QualityMedium,
		DefaultSpeed:   1.0,

		EnableCaching:       true,
		CacheExpirationDays: 30,

		CostLimits: CostLimits{
			DailyLimit:      5.0,
			MonthlyLimit:    50.0,
			PerRequestLimit: 0.50,
		},

		OpenAI: OpenAIConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	providerValid := false
	for _, p := range ProviderNames() {
		if c.Provider == p {
			providerValid = true
			break
		}
	}
	if !providerValid {
		return fmt.Errorf("invalid provider '%s': must be one of %v", c.Provider, ProviderNames())
	}

	if _, ok := LookupVoice(c.DefaultVoice); !ok {
		return fmt.Errorf("invalid default voice '%s'", c.DefaultVoice)
	}

	if !c.DefaultFormat.Valid() {
		return fmt.Errorf("invalid default format '%s': must be one of %v", c.DefaultFormat, Formats())
	}

	if !c.DefaultQuality.Valid() {
		return fmt.Errorf("invalid default quality '%s'", c.DefaultQuality)
	}

	if c.DefaultSpeed < SpeedMin || c.DefaultSpeed > SpeedMax {
		return fmt.Errorf("default speed must be between %.2f and %.1f, got %f",
			SpeedMin, SpeedMax, c.DefaultSpeed)
	}

	if c.CacheExpirationDays < 1 {
		return fmt.Errorf("cache expiration must be at least 1 day, got %d", c.CacheExpirationDays)
	}

	if c.CostLimits.DailyLimit <= 0 || c.CostLimits.MonthlyLimit <= 0 || c.CostLimits.PerRequestLimit <= 0 {
		return fmt.Errorf("cost limits must be positive, got %+v", c.CostLimits)
	}

	return nil
}

// CacheTTL returns the audio cache expiry as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheExpirationDays) * 24 * time.Hour
}
