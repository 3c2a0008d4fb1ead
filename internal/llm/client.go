// Package llm provides provider-agnostic text-completion clients. The
// matcher only ever needs a single prompt-in, text-out exchange, so the
// interface is deliberately small.
package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Provider represents an LLM provider
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
)

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Provider    Provider
	Model       string
	Prompt      string
	SystemMsg   string
	MaxTokens   int
	Temperature float64
}

// CompletionResponse represents the LLM response
type CompletionResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// Client is the interface for LLM clients
type Client interface {
	// Complete sends a completion request and returns the response
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Config holds LLM client configuration
type Config struct {
	DefaultProvider Provider
	GoogleAPIKey    string
	GoogleModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OllamaHost      string
	OllamaModel     string
}

// MultiClient manages multiple LLM providers with a fallback chain
type MultiClient struct {
	providers       map[Provider]Client
	fallbacks       map[Provider][]Provider
	defaultProvider Provider
}

// NewMultiClient creates a client for every configured provider. Returns
// an error only when no provider at all is configured.
func NewMultiClient(cfg Config) (*MultiClient, error) {
	mc := &MultiClient{
		providers:       make(map[Provider]Client),
		fallbacks:       make(map[Provider][]Provider),
		defaultProvider: cfg.DefaultProvider,
	}

	if cfg.GoogleAPIKey != "" {
		client, err := NewGoogleClient(cfg.GoogleAPIKey, cfg.GoogleModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google client: %w", err)
		}
		mc.providers[ProviderGoogle] = client
	}

	if cfg.AnthropicAPIKey != "" {
		client, err := NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
		}
		mc.providers[ProviderAnthropic] = client
	}

	if cfg.OpenAIAPIKey != "" {
		client, err := NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		mc.providers[ProviderOpenAI] = client
	}

	if cfg.OllamaHost != "" {
		client, err := NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
		if err != nil {
			log.Warn().Err(err).Msg("Ollama client initialization failed")
		} else {
			mc.providers[ProviderOllama] = client
		}
	}

	if len(mc.providers) == 0 {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	if mc.defaultProvider == "" {
		// Deterministic preference order
		for _, p := range []Provider{ProviderGoogle, ProviderAnthropic, ProviderOpenAI, ProviderOllama} {
			if _, ok := mc.providers[p]; ok {
				mc.defaultProvider = p
				break
			}
		}
	}

	mc.fallbacks[ProviderGoogle] = []Provider{ProviderAnthropic, ProviderOpenAI, ProviderOllama}
	mc.fallbacks[ProviderAnthropic] = []Provider{ProviderGoogle, ProviderOpenAI, ProviderOllama}
	mc.fallbacks[ProviderOpenAI] = []Provider{ProviderGoogle, ProviderAnthropic, ProviderOllama}
	mc.fallbacks[ProviderOllama] = []Provider{ProviderGoogle, ProviderAnthropic, ProviderOpenAI}

	return mc, nil
}

// Complete sends a completion request, trying fallback providers when the
// primary fails
func (mc *MultiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	provider := req.Provider
	if provider == "" {
		provider = mc.defaultProvider
	}

	if client, ok := mc.providers[provider]; ok {
		resp, err := client.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		log.Warn().Err(err).Str("provider", string(provider)).Msg("provider failed, trying fallbacks")
	}

	for _, fallback := range mc.fallbacks[provider] {
		client, ok := mc.providers[fallback]
		if !ok {
			continue
		}
		req.Provider = fallback
		resp, err := client.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		log.Warn().Err(err).Str("provider", string(fallback)).Msg("fallback provider failed")
	}

	return nil, fmt.Errorf("all LLM providers failed")
}

// IsProviderAvailable checks if a provider is configured and available
func (mc *MultiClient) IsProviderAvailable(provider Provider) bool {
	_, ok := mc.providers[provider]
	return ok
}
