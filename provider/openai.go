package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/xliffai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's chat completion API.
// Token log-probabilities are requested on every call so the confidence
// engine has a signal to work with.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate requests NumOptions samples for the text and returns each
// with its per-token log-probabilities.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) ([]TranslationCandidate, error) {
	if strings.TrimSpace(req.Text) == "" {
		return []TranslationCandidate{}, nil
	}

	n := req.NumOptions
	if n < 1 {
		n = 1
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
		N:           n,
		LogProbs:    true,
	})
	if err != nil {
		return nil, &xliffai.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &xliffai.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	candidates := make([]TranslationCandidate, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		candidate := TranslationCandidate{
			Text: strings.TrimSpace(choice.Message.Content),
		}
		if choice.LogProbs != nil {
			candidate.TokenLogProbs = make([]float64, 0, len(choice.LogProbs.Content))
			for _, tok := range choice.LogProbs.Content {
				candidate.TokenLogProbs = append(candidate.TokenLogProbs, tok.LogProb)
			}
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	sourceName := xliffai.GetLanguageName(req.SourceLang)
	targetName := xliffai.GetLanguageName(req.TargetLang)

	prompt := fmt.Sprintf(`You are a professional translator for Microsoft Dynamics 365 Business Central UI text.
Translate the user's text from %s to %s.

Rules:
- The text is a UI caption, tooltip or column header. Keep it short and idiomatic for business software.
- Preserve placeholders exactly as written: %%1, %%2, %%s, {0}, {name}, [name].
- Do not add quotes, explanations or punctuation that is not in the source.
- Reply with the translation only.`, sourceName, targetName)

	if req.PromptExtra != "" {
		prompt += "\n\n" + req.PromptExtra
	}

	return prompt
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"model is loading",
		"model_loading",
		"loading",
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
