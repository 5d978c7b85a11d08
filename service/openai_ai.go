package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/tieubaoca/pdf-ask/types"
)

type OpenAIService struct {
	client *openai.Client
	model  string
	genCfg types.GenerationConfig
}

// NewOpenAIService talks to any OpenAI-compatible endpoint. An empty baseURL
// keeps the library default.
func NewOpenAIService(baseURL string, apiKey, model string, genCfg types.GenerationConfig) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
		genCfg: genCfg,
	}
}

// Generate sends each prompt as its own chat completion. go-openai exposes no
// top_k field, so genCfg.TopK is left to the server default here.
func (s *OpenAIService) Generate(ctx context.Context, prompts []string) (*types.LLMResult, error) {
	result := &types.LLMResult{
		Generations: make([][]types.Generation, 0, len(prompts)),
	}
	for _, prompt := range prompts {
		resp, err := s.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: s.model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleUser,
						Content: prompt,
					},
				},
				MaxTokens:   s.genCfg.MaxNewTokens,
				Temperature: s.genCfg.Temperature,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("openai chat completion failed: %w", err)
		}

		batch := make([]types.Generation, 0, len(resp.Choices))
		for _, choice := range resp.Choices {
			batch = append(batch, types.Generation{
				Text:         choice.Message.Content,
				FinishReason: string(choice.FinishReason),
			})
		}
		result.Generations = append(result.Generations, batch)
	}
	return result, nil
}
