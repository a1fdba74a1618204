package generator_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"lakbay/pkg/utils"
)

var Module = fx.Provide(provideGeneratorClient)

// provideGeneratorClient selects the AI backend: Gemini when a key is
// configured, OpenAI otherwise.
func provideGeneratorClient() utils.GeneratorClientInterface {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := utils.NewGeminiGeneratorClient(apiKey, os.Getenv("GEMINI_MODEL"))
		if err == nil {
			return client
		}
		log.Printf("Gemini client unavailable, falling back to OpenAI: %v", err)
	}
	return utils.NewOpenAIGeneratorClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
}
