// Package config resolves claim-debate settings from defaults, an optional
// YAML config file, a .env file, and environment variables.
//
// Environment variables use the CLAIMDEBATE_ prefix with dots replaced by
// underscores, e.g. CLAIMDEBATE_PRICING_INPUT_PER_MILLION. The API key may
// also come from the provider's own variable (GOOGLE_API_KEY or OPENAI_API_KEY).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cpunion/claim-debate/pkg/cost"
	"github.com/cpunion/claim-debate/pkg/llm"
)

// EnvPrefix is the prefix for claim-debate environment variables.
const EnvPrefix = "CLAIMDEBATE"

// Config holds every setting the CLI needs to run a debate.
type Config struct {
	Provider  string        `mapstructure:"provider"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Pricing   cost.Pricing  `mapstructure:"pricing"`
	RolesFile string        `mapstructure:"roles_file"`
	EventLog  string        `mapstructure:"event_log"`
}

// Default returns the built-in configuration. Model and pricing stay empty
// so they can be resolved per provider.
func Default() *Config {
	return &Config{
		Provider: llm.ProviderGemini,
		Timeout:  2 * time.Minute,
	}
}

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("provider", d.Provider)
	v.SetDefault("model", d.Model)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("pricing.input_per_million", d.Pricing.InputPerMillion)
	v.SetDefault("pricing.output_per_million", d.Pricing.OutputPerMillion)
	v.SetDefault("roles_file", d.RolesFile)
	v.SetDefault("event_log", d.EventLog)
}

// NewViper returns a viper instance wired for env lookups and defaults.
// cfgFile may be empty, in which case ./claimdebate.yaml is used if present.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("claimdebate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return v, nil
}

// LoadDotEnv loads .env files without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		_ = godotenv.Load()
		return
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load unmarshals v, resolves provider-dependent values and validates.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.resolve()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// resolve fills values that depend on the provider.
func (c *Config) resolve() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = llm.ProviderGemini
	}
	if c.Model == "" {
		c.Model = llm.DefaultModel(c.Provider)
	}
	if c.Pricing == (cost.Pricing{}) {
		if p, ok := cost.Lookup(c.Model); ok {
			c.Pricing = p
		}
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(llm.CredentialEnv(c.Provider))
	}
}

// LLMConfig returns the backend settings.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}
}
