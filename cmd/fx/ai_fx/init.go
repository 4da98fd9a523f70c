package aifx

import (
	"os"

	"go.uber.org/fx"

	"tripflow/pkg/utils"
)

var Module = fx.Provide(
	provideAIClient)

func provideAIClient() (utils.AIClientInterface, error) {
	provider := os.Getenv("AI_PROVIDER")
	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		// Provider-specific keys as a fallback for existing deployments.
		if provider == "openai" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		} else {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	return utils.NewAIClient(provider, apiKey, os.Getenv("AI_PREFERRED_MODEL"))
}
