// Package llm implements the optional model-backed enrichment adapter.
// A provider reviews the document and returns additional observations;
// it is never required for a valid analysis and its failures only ever
// surface as a meta warning.
package llm

import (
	"context"

	"github.com/magnusgp/fermatter/internal/model"
)

// Provider defines the interface for review providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Review asks the model for observations about the document.
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// ReviewRequest is the input for one enrichment call.
type ReviewRequest struct {
	// Request is the original analyze request.
	Request model.AnalyzeRequest

	// Paragraphs are the segmented paragraph bodies, in order, so the
	// model can address findings by index.
	Paragraphs []string

	// SourcesContext is the formatted allowlist of citable sources.
	// The model may only cite ids that appear here.
	SourcesContext string

	// AllowedSourceIDs is the machine-checkable form of the allowlist.
	AllowedSourceIDs []string

	// Model overrides the configured model name when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// ReviewResponse is the provider's parsed output.
type ReviewResponse struct {
	// Observations are the validated findings from the model.
	Observations []model.Observation

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption where the API reports it.
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI/Anthropic.
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1200,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}
