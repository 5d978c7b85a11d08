package types

// NoInformation is returned to the caller when the model produced no candidates.
const NoInformation = "No information available."

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	MaxNewTokens int
	Temperature  float32
	TopK         int
}

// Generation is a single candidate produced for a prompt.
type Generation struct {
	Text         string
	FinishReason string
}

// LLMResult holds one batch of candidates per input prompt, in prompt order.
type LLMResult struct {
	Generations [][]Generation
}

// FirstText returns the first candidate of the first batch, or NoInformation.
func (r *LLMResult) FirstText() string {
	if r == nil || len(r.Generations) == 0 || len(r.Generations[0]) == 0 {
		return NoInformation
	}
	return r.Generations[0][0].Text
}
