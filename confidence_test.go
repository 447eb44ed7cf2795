package xliffai

import (
	"math"
	"testing"
)

func TestScoreLogProbs(t *testing.T) {
	policy := DefaultScoringPolicy()

	tests := []struct {
		name     string
		logProbs []float64
		want     float64
	}{
		{"single token", []float64{math.Log(0.9)}, 0.9},
		{"mean and min blend", []float64{math.Log(0.9), math.Log(0.5)}, 0.64},
		{"no log-probs", nil, 0.7},
		{"certain tokens", []float64{0, 0, 0}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreLogProbs(tt.logProbs, policy); got != tt.want {
				t.Errorf("ScoreLogProbs(%v) = %v, want %v", tt.logProbs, got, tt.want)
			}
		})
	}
}

func TestExtractPlaceholders(t *testing.T) {
	got := ExtractPlaceholders("Copy %1 of %2 to {0} as {name} in [group] via %s")
	want := map[string]bool{
		"%1": true, "%2": true, "{0}": true, "{name}": true, "[group]": true, "%s": true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d distinct placeholders", got, len(want))
	}
	for _, tok := range got {
		if !want[tok] {
			t.Errorf("unexpected placeholder %q", tok)
		}
	}

	if got := ExtractPlaceholders("no placeholders here"); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestPlaceholderFraction(t *testing.T) {
	tests := []struct {
		source, translation string
		want                float64
	}{
		{"Copy %1 items", "Kopiere %1 Artikel", 1.0},
		{"Copy %1 items", "Kopiere Artikel", 0.0},
		{"Move %1 to %2", "Verschiebe %1", 0.5},
		{"Plain text", "Anything", 1.0},
	}
	for _, tt := range tests {
		if got := PlaceholderFraction(tt.source, tt.translation); got != tt.want {
			t.Errorf("PlaceholderFraction(%q, %q) = %v, want %v",
				tt.source, tt.translation, got, tt.want)
		}
	}
}

func TestAgreementScore(t *testing.T) {
	if got := AgreementScore("Artikelnummer", nil); got != 1.0 {
		t.Errorf("lone sample = %v, want 1.0", got)
	}
	if got := AgreementScore("Neuer Artikel", []string{"Neuer Artikel", "neuer artikel"}); got != 1.0 {
		t.Errorf("identical samples = %v, want 1.0", got)
	}
	if got := AgreementScore("alpha", []string{"beta"}); got != 0.0 {
		t.Errorf("disjoint samples = %v, want 0.0", got)
	}
}

func TestScoreTranslation(t *testing.T) {
	policy := DefaultScoringPolicy()

	t.Run("dropped placeholder penalized", func(t *testing.T) {
		logProbs := []float64{math.Log(0.9)}
		full := ScoreTranslation("Copy %1 items", "Kopiere %1 Artikel", logProbs, nil, policy)
		dropped := ScoreTranslation("Copy %1 items", "Kopiere Artikel", logProbs, nil, policy)
		if full != 0.9 {
			t.Errorf("full = %v, want 0.9", full)
		}
		// 0.9 * 0.85 with no agreement adjustment.
		want := round2(0.9 * policy.PlaceholderFloor)
		if dropped != want {
			t.Errorf("dropped = %v, want %v", dropped, want)
		}
	})

	t.Run("capped below manual confidence", func(t *testing.T) {
		got := ScoreTranslation("Item", "Artikel", []float64{0, 0}, nil, policy)
		if got != policy.ModelConfidenceCap {
			t.Errorf("got %v, want cap %v", got, policy.ModelConfidenceCap)
		}
	})

	t.Run("disagreement penalized", func(t *testing.T) {
		logProbs := []float64{math.Log(0.9)}
		agreed := ScoreTranslation("Item", "Artikel", logProbs, []string{"Artikel"}, policy)
		disputed := ScoreTranslation("Item", "Artikel", logProbs, []string{"Gegenstand"}, policy)
		if disputed >= agreed {
			t.Errorf("disputed %v must score below agreed %v", disputed, agreed)
		}
		// 0.9 * (0.8 + 0.2*0).
		if disputed != 0.72 {
			t.Errorf("disputed = %v, want 0.72", disputed)
		}
	})

	t.Run("no log-probs uses prior", func(t *testing.T) {
		if got := ScoreTranslation("Item", "Artikel", nil, nil, policy); got != 0.7 {
			t.Errorf("got %v, want 0.7", got)
		}
	})
}
