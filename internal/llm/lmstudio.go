package llm

import (
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
	// LM Studio ignores the key unless authentication is enabled.
	lmStudioPlaceholderKey = "lm-studio"
)

// LMStudioClient talks to LM Studio's OpenAI-compatible server.
type LMStudioClient struct {
	openAIChat
	baseURL string
}

// NewLMStudioClient returns a client for model. The key is read from
// LMSTUDIO_API_KEY, then OPENAI_API_KEY.
func NewLMStudioClient(model, baseURL string) (*LMStudioClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	key := firstEnv("LMSTUDIO_API_KEY", "OPENAI_API_KEY")
	if key == "" {
		key = lmStudioPlaceholderKey
	}
	client := openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(key))

	return &LMStudioClient{
		openAIChat: openAIChat{client: client, model: model, name: "lm studio"},
		baseURL:    baseURL,
	}, nil
}

// firstEnv returns the first non-empty variable among names.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
