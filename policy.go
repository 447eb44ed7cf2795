package xliffai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringPolicy collects every scoring and confidence constant in one
// auditable table, so the policy can be inspected and tested
// independently of the scanning logic. Matching and scoring functions
// take it explicitly; there is no package-level default state.
type ScoringPolicy struct {
	// Candidate matching.
	BaseConfidence          float64 `yaml:"baseConfidence"`          // starting score for any text match
	TextWeightFactor        float64 `yaml:"textWeightFactor"`        // multiplied by the candidate weight
	PropertyMatchBonus      float64 `yaml:"propertyMatchBonus"`      // property id matches expectation
	ElementTypeBonus        float64 `yaml:"elementTypeBonus"`        // unit type compatible with a plausible type
	ContextCorrelationBonus float64 `yaml:"contextCorrelationBonus"` // each uiArea/aria/tag correlation
	ColumnTableFieldBonus   float64 `yaml:"columnTableFieldBonus"`   // Column capture vs Table Field unit
	ColumnPageControlBonus  float64 `yaml:"columnPageControlBonus"`  // Column capture vs Page Control unit
	PageAffinityBonus       float64 `yaml:"pageAffinityBonus"`       // note names the capture's page
	TableAffinityBonus      float64 `yaml:"tableAffinityBonus"`      // note names the capture's table

	// Translation confidence.
	LogProbMeanWeight      float64 `yaml:"logProbMeanWeight"`
	LogProbMinWeight       float64 `yaml:"logProbMinWeight"`
	DefaultModelConfidence float64 `yaml:"defaultModelConfidence"` // used when no log-probs are available
	PlaceholderFloor       float64 `yaml:"placeholderFloor"`       // multiplier is floor + (1-floor)*fraction
	AgreementFloor         float64 `yaml:"agreementFloor"`
	ModelConfidenceCap     float64 `yaml:"modelConfidenceCap"` // 1.0 is reserved for manual corrections

	// Enrichment retry.
	LowConfidenceThreshold float64 `yaml:"lowConfidenceThreshold"`
	EnrichmentMaxSourceLen int     `yaml:"enrichmentMaxSourceLen"` // longer text is too context-dependent
	FuzzyExampleLimit      int     `yaml:"fuzzyExampleLimit"`
}

// DefaultScoringPolicy returns the production constants.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		BaseConfidence:          0.5,
		TextWeightFactor:        0.1,
		PropertyMatchBonus:      0.2,
		ElementTypeBonus:        0.15,
		ContextCorrelationBonus: 0.05,
		ColumnTableFieldBonus:   0.15,
		ColumnPageControlBonus:  0.10,
		PageAffinityBonus:       0.35,
		TableAffinityBonus:      0.15,

		LogProbMeanWeight:      0.7,
		LogProbMinWeight:       0.3,
		DefaultModelConfidence: 0.7,
		PlaceholderFloor:       0.85,
		AgreementFloor:         0.8,
		ModelConfidenceCap:     0.99,

		LowConfidenceThreshold: 0.70,
		EnrichmentMaxSourceLen: 80,
		FuzzyExampleLimit:      5,
	}
}

// LoadScoringPolicy reads a YAML policy file and overlays it on the
// defaults, so a file only needs to name the constants it changes.
func LoadScoringPolicy(path string) (ScoringPolicy, error) {
	policy := DefaultScoringPolicy()

	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return policy, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parsing policy file: %w", err)
	}
	return policy, nil
}
