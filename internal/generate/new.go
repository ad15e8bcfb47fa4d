package generate

import (
	"fmt"

	"github.com/rcliao/text-assist/internal/config"
)

// New returns the Generator selected by c.Provider.
func New(c config.GenerationConfig) (Generator, error) {
	switch c.Provider {
	case "openai":
		return NewOpenAIGenerator(c.APIKey, c.BaseURL, c.Model, c.Timeout), nil
	case "ollama":
		return NewOllamaGenerator(c.BaseURL, c.Model, c.Timeout), nil
	case "", "none":
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", c.Provider)
	}
}
