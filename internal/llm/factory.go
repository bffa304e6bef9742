package llm

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// ErrUnsupportedProvider is returned for provider names clockplan cannot talk to.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

var providerAliases = map[string]string{
	"":          ProviderCopilot,
	"copilot":   ProviderCopilot,
	"ollama":    ProviderOllama,
	"lmstudio":  ProviderLMStudio,
	"lm-studio": ProviderLMStudio,
	"llmstudio": ProviderLMStudio,
}

// ParseProvider resolves a configured provider name, including aliases,
// to one of the Provider constants. Empty means Copilot.
func ParseProvider(name string) (string, error) {
	p, ok := providerAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
	return p, nil
}

// IsLocal reports whether the provider runs a local model. Local models get
// the compact planning prompt.
func IsLocal(provider string) bool {
	p, err := ParseProvider(provider)
	return err == nil && p != ProviderCopilot
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	p, err := ParseProvider(provider)
	if err != nil {
		return nil, err
	}
	switch p {
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	default:
		return NewCopilotClient(model)
	}
}
