package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/types"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel the service calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiService keeps one client per API key for its whole lifetime, so a
// rotation never closes a client that another request is still using.
type GeminiService struct {
	clients    []*genai.Client
	models     []contentGenerator
	currentKey int
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, genCfg types.GenerationConfig) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{}
	for i, key := range apiKeys {
		client, err := genai.NewClient(context.Background(), option.WithAPIKey(key))
		if err != nil {
			service.Close()
			return nil, fmt.Errorf("failed to create gemini client for key %d: %w", i, err)
		}
		model := client.GenerativeModel(modelName)
		model.SetMaxOutputTokens(int32(genCfg.MaxNewTokens))
		model.SetTemperature(genCfg.Temperature)
		model.SetTopK(int32(genCfg.TopK))

		service.clients = append(service.clients, client)
		service.models = append(service.models, model)
	}
	return service, nil
}

// Close releases every client. The service must not be used afterwards.
func (s *GeminiService) Close() error {
	var errs []error
	for _, client := range s.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *GeminiService) currentModel() (int, contentGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.models[s.currentKey]
}

// rotateFrom moves off the key that just failed. When another request has
// already rotated away from it, the key it picked is kept.
func (s *GeminiService) rotateFrom(failed int) (int, contentGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == failed {
		s.currentKey = (failed + 1) % len(s.models)
	}
	return s.currentKey, s.models[s.currentKey]
}

func (s *GeminiService) Generate(ctx context.Context, prompts []string) (*types.LLMResult, error) {
	result := &types.LLMResult{
		Generations: make([][]types.Generation, 0, len(prompts)),
	}
	for _, prompt := range prompts {
		key, model := s.currentModel()
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil && len(s.models) > 1 && ctx.Err() == nil {
			logger.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Gemini request failed, rotating API key")
			_, model = s.rotateFrom(key)
			resp, err = model.GenerateContent(ctx, genai.Text(prompt))
		}
		if err != nil {
			return nil, fmt.Errorf("gemini generate content failed: %w", err)
		}
		result.Generations = append(result.Generations, candidatesToGenerations(resp))
	}
	return result, nil
}

func candidatesToGenerations(resp *genai.GenerateContentResponse) []types.Generation {
	if resp == nil {
		return nil
	}
	batch := make([]types.Generation, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var content strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
		batch = append(batch, types.Generation{
			Text:         content.String(),
			FinishReason: cand.FinishReason.String(),
		})
	}
	return batch
}

// splitKeys accepts a comma separated list so several keys can share one setting.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
