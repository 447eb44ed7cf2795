package xliffai

import (
	"context"
	"fmt"
	"strings"
)

// Engine runs the free-text translation flow: exact store lookup, then
// the AI provider with confidence scoring, then one bounded enrichment
// retry with fuzzy examples when the confidence is low. Engines are
// caller-owned and explicitly constructed; there is no shared state
// between instances.
type Engine struct {
	targetLang string
	sourceLang string
	provider   Provider
	store      Store
	policy     ScoringPolicy
	numOptions int
}

// EngineOption is a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithSourceLang sets the source language.
func WithSourceLang(lang string) EngineOption {
	return func(e *Engine) {
		e.sourceLang = lang
	}
}

// WithStore sets the exact/fuzzy lookup store.
func WithStore(s Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

// WithScoringPolicy overrides the default scoring policy.
func WithScoringPolicy(policy ScoringPolicy) EngineOption {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithNumOptions sets how many samples to request per provider call.
// More samples sharpen the agreement score at the cost of tokens.
func WithNumOptions(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.numOptions = n
		}
	}
}

// NewEngine creates an Engine for the given target language and provider.
func NewEngine(targetLang string, provider Provider, opts ...EngineOption) *Engine {
	e := &Engine{
		targetLang: targetLang,
		sourceLang: "en-US",
		provider:   provider,
		policy:     DefaultScoringPolicy(),
		numOptions: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's scoring policy.
func (e *Engine) Policy() ScoringPolicy {
	return e.policy
}

// Translate resolves a free-text translation. The store is consulted
// first; a hit is returned as-is (store confidence, store label). On a
// miss the provider is called once, every sample is scored, and if the
// best score falls below the low-confidence threshold for short text,
// a single enrichment round with fuzzy examples is attempted. The
// enriched result is final regardless of its own confidence; there is
// no unbounded retry loop.
func (e *Engine) Translate(ctx context.Context, text string) (*TranslationResult, error) {
	if e.store != nil {
		// A store error degrades to a miss so the flow proceeds.
		if hit, err := e.store.ExactLookup(ctx, text, e.targetLang); err == nil && hit != nil {
			return &TranslationResult{
				Text:       hit.Target,
				Confidence: hit.Confidence,
				Source:     TranslationSourceStore,
			}, nil
		}
	}

	if e.provider == nil {
		return nil, &TranslationError{Message: "no provider configured"}
	}

	result, err := e.callProvider(ctx, text, "")
	if err != nil {
		return nil, err
	}

	if result.Confidence >= e.policy.LowConfidenceThreshold {
		return result, nil
	}
	if len([]rune(text)) > e.policy.EnrichmentMaxSourceLen || e.store == nil {
		return result, nil
	}

	examples, err := e.store.FuzzyLookup(ctx, text, e.targetLang)
	if err != nil || len(examples) == 0 {
		return result, nil
	}
	if len(examples) > e.policy.FuzzyExampleLimit {
		examples = examples[:e.policy.FuzzyExampleLimit]
	}

	enriched, err := e.callProvider(ctx, text, enrichmentPrompt(examples))
	if err != nil {
		// The initial result still stands when the retry fails.
		return result, nil
	}
	enriched.Enriched = true
	return enriched, nil
}

// callProvider performs one provider call and scores every sample,
// returning the best one.
func (e *Engine) callProvider(ctx context.Context, text, promptExtra string) (*TranslationResult, error) {
	samples, err := e.provider.Translate(ctx, TranslateRequest{
		Text:        text,
		SourceLang:  e.sourceLang,
		TargetLang:  e.targetLang,
		NumOptions:  e.numOptions,
		PromptExtra: promptExtra,
	})
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, &ProviderError{Message: "provider returned no samples", Retryable: true}
	}

	texts := make([]string, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
	}

	best := 0
	bestScore := -1.0
	for i, s := range samples {
		others := make([]string, 0, len(texts)-1)
		others = append(others, texts[:i]...)
		others = append(others, texts[i+1:]...)

		score := ScoreTranslation(text, s.Text, s.TokenLogProbs, others, e.policy)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	return &TranslationResult{
		Text:       samples[best].Text,
		Confidence: bestScore,
		Source:     TranslationSourceAI,
		Samples:    len(samples),
	}, nil
}

// enrichmentPrompt renders fuzzy examples into prompt guidance for the
// second pass.
func enrichmentPrompt(examples []Example) string {
	var b strings.Builder
	b.WriteString("Previously approved translations for similar text:\n")
	for _, ex := range examples {
		fmt.Fprintf(&b, "- %q -> %q\n", ex.Source, ex.Target)
	}
	b.WriteString("Use them for terminology and tone only. Do not substitute words one for one; translate the whole phrase naturally.")
	return b.String()
}
