package xliffai

import "strings"

// Origin labels for text candidates, in decreasing weight order.
const (
	OriginCaptured    = "captured"
	OriginInnerText   = "innerText"
	OriginTitle       = "title"
	OriginAriaLabel   = "ariaLabel"
	OriginPlaceholder = "placeholder"
)

// BuildTextCandidates derives the weighted search texts for a capture.
// The exact captured text weighs 1.0; the DOM-derived fallbacks weigh
// progressively less. Raw fields that normalize to the same key are
// deduplicated keeping the highest-weight one.
func BuildTextCandidates(captured string, ctx ElementContext) []TextCandidate {
	raw := []TextCandidate{
		{Text: captured, Weight: 1.0, Origin: OriginCaptured},
		{Text: ctx.InnerText, Weight: 0.9, Origin: OriginInnerText},
		{Text: ctx.Title, Weight: 0.8, Origin: OriginTitle},
		{Text: ctx.AriaLabel, Weight: 0.7, Origin: OriginAriaLabel},
		{Text: ctx.Placeholder, Weight: 0.6, Origin: OriginPlaceholder},
	}

	seen := make(map[string]bool)
	out := make([]TextCandidate, 0, len(raw))
	for _, c := range raw {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		c.NormalizedText = Normalize(c.Text)
		if c.NormalizedText == "" || seen[c.NormalizedText] {
			continue
		}
		seen[c.NormalizedText] = true
		out = append(out, c)
	}
	return out
}
