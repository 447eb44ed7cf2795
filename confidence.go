package xliffai

import (
	"math"
	"regexp"
	"strings"
)

// ScoreLogProbs blends per-token log-probabilities into a confidence
// score: each log-prob becomes a probability, and the score is
// meanWeight*mean + minWeight*min, rounded to two decimals. The minimum
// term penalizes a single very uncertain token that an average alone
// would mask. With no log-probs available the score defaults to a
// medium prior; absence of signal should not look like failure.
func ScoreLogProbs(logProbs []float64, policy ScoringPolicy) float64 {
	if len(logProbs) == 0 {
		return policy.DefaultModelConfidence
	}

	sum := 0.0
	min := math.Inf(1)
	for _, lp := range logProbs {
		p := math.Exp(lp)
		sum += p
		if p < min {
			min = p
		}
	}
	mean := sum / float64(len(logProbs))

	return round2(policy.LogProbMeanWeight*mean + policy.LogProbMinWeight*min)
}

// Placeholder patterns recognized in source text: %1, %s, {0}, {name},
// [name]. The set is fixed.
var placeholderRes = []*regexp.Regexp{
	regexp.MustCompile(`%\d+`),
	regexp.MustCompile(`%[a-zA-Z]`),
	regexp.MustCompile(`\{\d+\}`),
	regexp.MustCompile(`\{\w+\}`),
	regexp.MustCompile(`\[\w+\]`),
}

// ExtractPlaceholders returns the distinct placeholder tokens found in
// the source text, in first-seen order.
func ExtractPlaceholders(source string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range placeholderRes {
		for _, tok := range re.FindAllString(source, -1) {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	return out
}

// PlaceholderFraction is the fraction of the source's placeholder tokens
// that appear verbatim in the translation. A source with no placeholders
// scores 1.0.
func PlaceholderFraction(source, translation string) float64 {
	placeholders := ExtractPlaceholders(source)
	if len(placeholders) == 0 {
		return 1.0
	}
	kept := 0
	for _, tok := range placeholders {
		if strings.Contains(translation, tok) {
			kept++
		}
	}
	return float64(kept) / float64(len(placeholders))
}

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

func tokenBag(s string) map[string]bool {
	bag := make(map[string]bool)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		bag[tok] = true
	}
	return bag
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// AgreementScore measures how much a candidate translation agrees with
// the other samples from the same request: the mean pairwise Jaccard
// similarity over lower-cased alphanumeric token bags. A lone sample
// scores 1.0.
func AgreementScore(candidate string, others []string) float64 {
	if len(others) == 0 {
		return 1.0
	}
	bag := tokenBag(candidate)
	sum := 0.0
	for _, other := range others {
		sum += jaccard(bag, tokenBag(other))
	}
	return sum / float64(len(others))
}

// ScoreTranslation computes the full confidence for one candidate
// translation: the log-prob blend adjusted by placeholder preservation
// and cross-sample agreement, clamped so model output never reaches the
// 1.0 reserved for exact-match and manual corrections.
func ScoreTranslation(source, candidate string, logProbs []float64, others []string, policy ScoringPolicy) float64 {
	score := ScoreLogProbs(logProbs, policy)

	pf := PlaceholderFraction(source, candidate)
	score *= policy.PlaceholderFloor + (1-policy.PlaceholderFloor)*pf

	agreement := AgreementScore(candidate, others)
	score *= policy.AgreementFloor + (1-policy.AgreementFloor)*agreement

	if score < 0 {
		score = 0
	}
	if score > policy.ModelConfidenceCap {
		score = policy.ModelConfidenceCap
	}
	return round2(score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
