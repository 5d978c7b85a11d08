package service

import (
	"context"
	"fmt"

	"github.com/tieubaoca/pdf-ask/config"
	"github.com/tieubaoca/pdf-ask/types"
)

// AIService generates text for a batch of prompts. The result holds one batch
// of candidates per prompt, in the same order.
type AIService interface {
	Generate(ctx context.Context, prompts []string) (*types.LLMResult, error)
}

// NewAIService builds the backend selected by cfg.Provider.
func NewAIService(cfg config.LLMConfig) (AIService, error) {
	genCfg := types.GenerationConfig{
		MaxNewTokens: cfg.MaxNewTokens,
		Temperature:  cfg.Temperature,
		TopK:         cfg.TopK,
	}
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIService(cfg.BaseURL, cfg.APIToken, cfg.Model, genCfg), nil
	case "gemini":
		return NewGeminiService(splitKeys(cfg.APIToken), cfg.Model, genCfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
