package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiClient_NoProviders(t *testing.T) {
	_, err := NewMultiClient(Config{})
	assert.Error(t, err)
}

func TestNewMultiClient_RegistersConfiguredProviders(t *testing.T) {
	mc, err := NewMultiClient(Config{
		GoogleAPIKey:    "g-key",
		AnthropicAPIKey: "a-key",
		OpenAIAPIKey:    "o-key",
	})
	require.NoError(t, err)

	assert.True(t, mc.IsProviderAvailable(ProviderGoogle))
	assert.True(t, mc.IsProviderAvailable(ProviderAnthropic))
	assert.True(t, mc.IsProviderAvailable(ProviderOpenAI))
	assert.False(t, mc.IsProviderAvailable(ProviderOllama))
}

func TestNewMultiClient_DefaultProviderPreference(t *testing.T) {
	mc, err := NewMultiClient(Config{AnthropicAPIKey: "a-key", OpenAIAPIKey: "o-key"})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, mc.defaultProvider)

	mc, err = NewMultiClient(Config{
		DefaultProvider: ProviderOpenAI,
		AnthropicAPIKey: "a-key",
		OpenAIAPIKey:    "o-key",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, mc.defaultProvider)
}

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("", "")
	assert.Error(t, err)

	client, err := NewAnthropicClient("a-key", "")
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicModel, client.model)
}
