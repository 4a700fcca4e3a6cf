package model

import "time"

// Config is the full application configuration. Everything here is
// explicit input: the engine itself holds no process-wide state.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	CORSOrigins  []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	RateLimit    float64       `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/sec per client
	RateBurst    int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// CacheConfig configures the analyze-response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// AnalysisConfig carries the engine thresholds. They are passed down as
// immutable values; concurrent calls never share mutable state.
type AnalysisConfig struct {
	// MaxSnapshots bounds how much history one call will consider.
	MaxSnapshots int `yaml:"max_snapshots" mapstructure:"max_snapshots"`
	// RewriteThreshold is the minimum rewrite count before a paragraph
	// is reported as unstable.
	RewriteThreshold int `yaml:"rewrite_threshold" mapstructure:"rewrite_threshold"`
	// SimilarityThreshold is the token-overlap ratio below which two
	// versions of a paragraph slot count as a substantive rewrite.
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// LLMConfig configures the optional enrichment adapter.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// OutputConfig configures CLI rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8787",
			CORSOrigins:  []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit:    5,
			RateBurst:    10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Analysis: DefaultAnalysisConfig(),
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1200,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// DefaultAnalysisConfig returns the engine thresholds used when the
// caller does not override them.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MaxSnapshots:        50,
		RewriteThreshold:    2,
		SimilarityThreshold: 0.5,
	}
}
