// factory.go - Classifier Provider Factory for creating provider instances

package ai

import (
	"fmt"
	"log"

	"github.com/bosocmputer/document_classifier/configs"
)

// CreateClassifierProvider creates a classifier provider based on configuration.
// The provider handle is created once at boot and injected into the orchestrator.
func CreateClassifierProvider() (ClassifierProvider, error) {
	provider := configs.AI_PROVIDER

	switch provider {
	case "anthropic":
		log.Printf("🟠 Creating Anthropic classifier provider")
		return NewAnthropicProvider(configs.ANTHROPIC_API_KEY, configs.ANTHROPIC_MODEL), nil

	case "gemini":
		log.Printf("🔵 Creating Gemini classifier provider")
		return NewGeminiProvider(configs.GEMINI_API_KEY, configs.GEMINI_MODEL), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: anthropic, gemini)", provider)
	}
}
