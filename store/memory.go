package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ZaguanLabs/xliffai"
)

// memoryEntry holds one stored correction.
type memoryEntry struct {
	source     string
	target     string
	confidence float64
}

// Memory is a thread-safe in-memory store, used standalone in tests and
// as a local cache in front of a remote store.
type Memory struct {
	mu      sync.RWMutex
	exact   map[string]memoryEntry      // Key(text, lang) -> entry
	byTerm  map[string]map[string]bool  // "lang:term" -> set of exact keys
	entries map[string]memoryEntry      // exact key -> entry (for fuzzy retrieval)
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.exact = make(map[string]memoryEntry)
	m.byTerm = make(map[string]map[string]bool)
	m.entries = make(map[string]memoryEntry)
}

// Add stores one correction.
func (m *Memory) Add(source, target, lang string, confidence float64) {
	key := Key(source, lang)
	entry := memoryEntry{source: source, target: target, confidence: confidence}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.exact[key] = entry
	m.entries[key] = entry
	for _, term := range SalientTerms(source) {
		tk := termKey(lang, term)
		if m.byTerm[tk] == nil {
			m.byTerm[tk] = make(map[string]bool)
		}
		m.byTerm[tk][key] = true
	}
}

// AddRecord stores a correction record. Manual corrections carry full
// confidence.
func (m *Memory) AddRecord(ctx context.Context, rec xliffai.CorrectionRecord, lang string) error {
	m.Add(rec.Source, rec.Target, lang, 1.0)
	return nil
}

// ExactLookup returns the stored correction for a text, or nil on miss.
func (m *Memory) ExactLookup(ctx context.Context, text, lang string) (*Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.exact[Key(text, lang)]
	if !ok {
		return nil, nil
	}
	return &Match{Target: entry.target, Confidence: entry.confidence}, nil
}

// FuzzyLookup returns stored pairs sharing salient terms with the text,
// bounded and deduplicated by source.
func (m *Memory) FuzzyLookup(ctx context.Context, text, lang string) ([]Example, error) {
	needle := Key(text, lang)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var examples []Example
	seen := make(map[string]bool)
	for _, term := range SalientTerms(text) {
		for key := range m.byTerm[termKey(lang, term)] {
			if key == needle || seen[key] {
				continue
			}
			seen[key] = true
			entry := m.entries[key]
			examples = append(examples, Example{Source: entry.source, Target: entry.target})
		}
	}
	// Map iteration order is random; sort for a deterministic bound.
	sort.Slice(examples, func(i, j int) bool { return examples[i].Source < examples[j].Source })
	return dedupeBySource(examples), nil
}

// Len returns the number of stored corrections.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.exact)
}

// Clear removes all stored corrections.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func termKey(lang, term string) string {
	return xliffai.NormalizeLocale(lang) + ":" + term
}

// Verify Memory implements Store
var _ Store = (*Memory)(nil)
