package xliffai

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

// fakeProvider returns one queued response batch per call and records
// every request it sees.
type fakeProvider struct {
	batches  [][]TranslationCandidate
	err      error
	requests []TranslateRequest
}

func (p *fakeProvider) Translate(_ context.Context, req TranslateRequest) ([]TranslationCandidate, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	call := len(p.requests) - 1
	if call >= len(p.batches) {
		call = len(p.batches) - 1
	}
	return p.batches[call], nil
}

// fakeStore serves canned lookups.
type fakeStore struct {
	exact        *StoreMatch
	exactErr     error
	examples     []Example
	fuzzyErr     error
	fuzzyCalled  bool
	exactQueries []string
}

func (s *fakeStore) ExactLookup(_ context.Context, text, _ string) (*StoreMatch, error) {
	s.exactQueries = append(s.exactQueries, text)
	return s.exact, s.exactErr
}

func (s *fakeStore) FuzzyLookup(_ context.Context, _, _ string) ([]Example, error) {
	s.fuzzyCalled = true
	return s.examples, s.fuzzyErr
}

func confident(text string) []TranslationCandidate {
	return []TranslationCandidate{{Text: text, TokenLogProbs: []float64{math.Log(0.95)}}}
}

func hesitant(text string) []TranslationCandidate {
	return []TranslationCandidate{{Text: text, TokenLogProbs: []float64{math.Log(0.5)}}}
}

func TestEngine_StoreHitShortCircuits(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{confident("Artikel")}}
	store := &fakeStore{exact: &StoreMatch{Target: "Artikel (gespeichert)", Confidence: 1.0}}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}

	if result.Source != TranslationSourceStore {
		t.Errorf("source = %s, want %s", result.Source, TranslationSourceStore)
	}
	if result.Text != "Artikel (gespeichert)" || result.Confidence != 1.0 {
		t.Errorf("result = %+v, want the stored match", result)
	}
	if len(provider.requests) != 0 {
		t.Error("provider must not be called on a store hit")
	}
}

func TestEngine_StoreErrorDegradesToMiss(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{confident("Artikel")}}
	store := &fakeStore{exactErr: errors.New("store down")}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != TranslationSourceAI || result.Text != "Artikel" {
		t.Errorf("result = %+v, want the provider translation", result)
	}
}

func TestEngine_PicksBestSample(t *testing.T) {
	// Three samples: the middle one has the highest token probabilities
	// and agrees with the third, so it must win.
	provider := &fakeProvider{batches: [][]TranslationCandidate{{
		{Text: "Gegenstand", TokenLogProbs: []float64{math.Log(0.4)}},
		{Text: "Artikel", TokenLogProbs: []float64{math.Log(0.95)}},
		{Text: "Artikel", TokenLogProbs: []float64{math.Log(0.6)}},
	}}}

	engine := NewEngine("de-DE", provider, WithNumOptions(3))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}

	if result.Text != "Artikel" {
		t.Errorf("text = %q, want the best-scored sample", result.Text)
	}
	if result.Samples != 3 {
		t.Errorf("samples = %d, want 3", result.Samples)
	}
	if provider.requests[0].NumOptions != 3 {
		t.Errorf("NumOptions = %d, want 3", provider.requests[0].NumOptions)
	}
}

func TestEngine_HighConfidenceSkipsEnrichment(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{confident("Artikel")}}
	store := &fakeStore{examples: []Example{{Source: "Item No.", Target: "Artikelnr."}}}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}

	if result.Enriched {
		t.Error("high-confidence result must not be enriched")
	}
	if store.fuzzyCalled {
		t.Error("fuzzy lookup must not run for a high-confidence result")
	}
	if len(provider.requests) != 1 {
		t.Errorf("provider called %d times, want 1", len(provider.requests))
	}
}

func TestEngine_LowConfidenceTriggersEnrichment(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{
		hesitant("Gegenstand"),
		hesitant("Artikel"),
	}}
	store := &fakeStore{examples: []Example{{Source: "Item No.", Target: "Artikelnr."}}}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}

	if len(provider.requests) != 2 {
		t.Fatalf("provider called %d times, want 2", len(provider.requests))
	}
	if provider.requests[0].PromptExtra != "" {
		t.Error("initial call must not carry enrichment guidance")
	}
	extra := provider.requests[1].PromptExtra
	if !strings.Contains(extra, "Artikelnr.") {
		t.Errorf("enrichment prompt missing the fuzzy example: %q", extra)
	}
	if !result.Enriched || result.Text != "Artikel" {
		t.Errorf("result = %+v, want the enriched translation", result)
	}
}

func TestEngine_EnrichedResultIsFinal(t *testing.T) {
	// Both passes come back low-confidence; the enriched result is still
	// accepted and no third call is made.
	provider := &fakeProvider{batches: [][]TranslationCandidate{
		hesitant("Gegenstand"),
		hesitant("Artikel"),
	}}
	store := &fakeStore{examples: []Example{{Source: "Item No.", Target: "Artikelnr."}}}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}
	if len(provider.requests) != 2 {
		t.Errorf("provider called %d times, want exactly 2", len(provider.requests))
	}
	if !result.Enriched {
		t.Error("second-pass result must be marked enriched")
	}
}

func TestEngine_LongTextSuppressesEnrichment(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{hesitant("...")}}
	store := &fakeStore{examples: []Example{{Source: "a", Target: "b"}}}

	long := strings.Repeat("word ", 20) // over the 80-character limit
	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), long)
	if err != nil {
		t.Fatal(err)
	}

	if result.Enriched || store.fuzzyCalled {
		t.Error("long text must never trigger enrichment")
	}
}

func TestEngine_NoExamplesSuppressesEnrichment(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{hesitant("Gegenstand")}}
	store := &fakeStore{}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}
	if !store.fuzzyCalled {
		t.Error("fuzzy lookup should have been attempted")
	}
	if result.Enriched || len(provider.requests) != 1 {
		t.Errorf("without examples the initial result stands: %+v", result)
	}
}

func TestEngine_EnrichmentFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{
		hesitant("Gegenstand"),
		{}, // second call yields no samples
	}}
	store := &fakeStore{examples: []Example{{Source: "a", Target: "b"}}}

	engine := NewEngine("de-DE", provider, WithStore(store))
	result, err := engine.Translate(context.Background(), "Item")
	if err != nil {
		t.Fatal(err)
	}
	if result.Enriched || result.Text != "Gegenstand" {
		t.Errorf("result = %+v, want the initial translation", result)
	}
}

func TestEngine_EmptySamplesIsRetryableError(t *testing.T) {
	provider := &fakeProvider{batches: [][]TranslationCandidate{{}}}

	engine := NewEngine("de-DE", provider)
	_, err := engine.Translate(context.Background(), "Item")

	var pErr *ProviderError
	if !errors.As(err, &pErr) || !pErr.Retryable {
		t.Fatalf("err = %v, want a retryable ProviderError", err)
	}
}

func TestEngine_NoProvider(t *testing.T) {
	engine := NewEngine("de-DE", nil)
	_, err := engine.Translate(context.Background(), "Item")

	var tErr *TranslationError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v, want TranslationError", err)
	}
}

func TestEnrichmentPrompt(t *testing.T) {
	prompt := enrichmentPrompt([]Example{
		{Source: "Item No.", Target: "Artikelnr."},
		{Source: "Item Card", Target: "Artikelkarte"},
	})
	for _, want := range []string{"Item No.", "Artikelnr.", "Item Card", "Artikelkarte"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "Do not substitute words one for one") {
		t.Error("prompt missing the word-for-word warning")
	}
}
