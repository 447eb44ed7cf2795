package xliffai

import (
	"regexp"
	"sort"
	"strings"
)

// The document is scanned with regexes rather than an XML parser on
// purpose: the scan tolerates malformed or partial documents and the
// mutator can splice a single block without reserializing anything, so
// round-trip formatting is preserved exactly.
var (
	transUnitRe   = regexp.MustCompile(`(?is)<trans-unit\s+id="([^"]*)"[^>]*>(.*?)</trans-unit>`)
	sourceTagRe   = regexp.MustCompile(`(?is)<source[^>]*>(.*?)</source>`)
	targetTagRe   = regexp.MustCompile(`(?is)<target[^>]*>(.*?)</target>`)
	noteTagRe     = regexp.MustCompile(`(?is)<note[^>]*>(.*?)</note>`)
	notePrefixRe  = regexp.MustCompile(`^\s*(\w+) (.+?) - `)
	maxSampleNote = 5
)

// MatchCandidates scans an XLIFF document for trans-units whose target
// text matches one of the weighted search texts, scores each match
// against the capture context, and returns the surviving candidates
// ranked by confidence, with diagnostics explaining what was filtered.
//
// A malformed unit never aborts the scan; it is skipped and counted.
// The function is pure with respect to its inputs and never fails:
// worst case is an empty result with an explanatory diagnostic.
func MatchCandidates(document string, texts []TextCandidate, ctx ElementContext, policy ScoringPolicy) *MatchResult {
	byNorm := make(map[string]TextCandidate, len(texts))
	for _, tc := range texts {
		if prev, ok := byNorm[tc.NormalizedText]; !ok || tc.Weight > prev.Weight {
			byNorm[tc.NormalizedText] = tc
		}
	}

	expectedProp := ExpectedPropertyID(ctx)
	plausible := PlausibleElementTypes(ctx)

	var diag MatchDiagnostics
	best := make(map[string]XliffCandidate)
	var order []string

	for _, block := range transUnitRe.FindAllStringSubmatch(document, -1) {
		unitID, body := block[1], block[2]

		target := targetTagRe.FindStringSubmatch(body)
		if target == nil {
			continue
		}
		matched, ok := byNorm[Normalize(target[1])]
		if !ok {
			continue
		}
		diag.TextMatches++

		note := ""
		if m := noteTagRe.FindStringSubmatch(body); m != nil {
			note = strings.TrimSpace(m[1])
		}
		if note != "" && len(diag.SampleNotes) < maxSampleNote {
			diag.SampleNotes = append(diag.SampleNotes, note)
		}

		identity := ParseUnitID(unitID)
		if identity == nil {
			continue
		}

		if expectedProp != "" && identity.PropertyID != expectedProp {
			diag.PropertyFiltered++
			continue
		}

		confidence := policy.BaseConfidence + policy.TextWeightFactor*matched.Weight
		if expectedProp != "" {
			confidence += policy.PropertyMatchBonus
		}
		confidence += elementTypeBonuses(identity, ctx, plausible, policy)

		bonus, pass := affinityBonus(note, ctx, policy)
		if !pass {
			diag.AffinityFiltered++
			continue
		}
		confidence += bonus

		if confidence > 1 {
			confidence = 1
		}

		sourceText := ""
		if m := sourceTagRe.FindStringSubmatch(body); m != nil {
			sourceText = strings.TrimSpace(m[1])
		}

		candidate := XliffCandidate{
			UnitID:      unitID,
			SourceText:  sourceText,
			TargetText:  strings.TrimSpace(target[1]),
			ObjectType:  identity.ObjectType,
			ObjectID:    identity.ObjectID,
			ElementType: identity.ElementType,
			ElementID:   identity.ElementID,
			PropertyID:  identity.PropertyID,
			Note:        note,
			Confidence:  confidence,
			MatchedVia:  matched.Origin,
			MatchedText: matched.Text,
		}

		// One record per unit id: a later match from another text
		// candidate only replaces a lower-confidence one.
		if prev, seen := best[unitID]; !seen {
			best[unitID] = candidate
			order = append(order, unitID)
		} else if candidate.Confidence > prev.Confidence {
			best[unitID] = candidate
		}
	}

	candidates := make([]XliffCandidate, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, best[id])
	}
	candidates = applyPagePriority(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	diag.FinalCount = len(candidates)
	if diag.FinalCount == 0 {
		diag.FilterReason = zeroYieldReason(diag)
	}

	return &MatchResult{Candidates: candidates, Diagnostics: diag}
}

// elementTypeBonuses sums the additive score adjustments that depend on
// the unit's element type. The bonuses are independent, not mutually
// exclusive.
func elementTypeBonuses(identity *TransUnitIdentity, ctx ElementContext, plausible map[string]bool, policy ScoringPolicy) float64 {
	bonus := 0.0
	xType := identity.ElementType

	if xType == "" {
		// Object-level properties (simple-grammar ids) carry no element
		// type; they never contradict the capture, so they keep the
		// compatibility bonus.
		bonus += policy.ElementTypeBonus
	} else {
		for bcType := range plausible {
			if TypesAreCompatible(xType, bcType) {
				bonus += policy.ElementTypeBonus
				break
			}
		}
	}

	// Weak correlations between capture signals and the unit's element
	// type, each worth one small increment.
	if ctx.UIArea == AreaActionBar && equalFold(xType, ElementAction) {
		bonus += policy.ContextCorrelationBonus
	}
	if ctx.UIArea == AreaList && TypesAreCompatible(xType, ElementColumn) {
		bonus += policy.ContextCorrelationBonus
	}
	if contentAreaFamily(ctx.UIArea) && TypesAreCompatible(xType, ElementField) {
		bonus += policy.ContextCorrelationBonus
	}
	if equalFold(ctx.AriaRole, "columnheader") && TypesAreCompatible(xType, ElementColumn) {
		bonus += policy.ContextCorrelationBonus
	}
	if (equalFold(ctx.HTMLTag, "button") || equalFold(ctx.AriaRole, "button")) && equalFold(xType, ElementAction) {
		bonus += policy.ContextCorrelationBonus
	}
	if inputTag(ctx.HTMLTag) && TypesAreCompatible(xType, ElementField) {
		bonus += policy.ContextCorrelationBonus
	}

	// A captured column backed by a table field is the strongest signal
	// of all: table fields are the primary source of list-column
	// captions. A page-control override is the weaker, explicit path.
	if equalFold(ctx.ElementType, ElementColumn) {
		if IsTableObject(identity.ObjectType) && equalFold(xType, ElementField) {
			bonus += policy.ColumnTableFieldBonus
		} else if IsPageObject(identity.ObjectType) && equalFold(xType, ElementControl) {
			bonus += policy.ColumnPageControlBonus
		}
	}

	return bonus
}

// affinityBonus evaluates the page/table affinity filter. It only
// engages when the context names a page or table and the unit carries a
// developer note; it then either returns the affinity bonus or fails
// the unit outright (a hard filter, not a score adjustment). A page
// match takes precedence when a note would satisfy both tests.
func affinityBonus(note string, ctx ElementContext, policy ScoringPolicy) (float64, bool) {
	if ctx.PageName == "" && ctx.TableName == "" {
		return 0, true
	}
	if note == "" {
		return 0, true
	}

	m := notePrefixRe.FindStringSubmatch(note)
	if m == nil {
		return 0, false
	}
	kind, name := m[1], strings.TrimSpace(m[2])

	if ctx.PageName != "" && IsPageObject(kind) && equalFold(name, ctx.PageName) {
		return policy.PageAffinityBonus, true
	}

	tableName := ctx.TableName
	if tableName == "" {
		tableName = DeriveTableName(ctx.PageName)
	}
	if tableName != "" && IsTableObject(kind) {
		if equalFold(name, tableName) || foldAlnum(name) == foldAlnum(tableName) {
			return policy.TableAffinityBonus, true
		}
	}

	return 0, false
}

// applyPagePriority drops table-sourced candidates when any page-sourced
// candidate survived: page captions take precedence when a table field
// and a page control both plausibly match the same text.
func applyPagePriority(candidates []XliffCandidate) []XliffCandidate {
	hasPage := false
	for _, c := range candidates {
		if IsPageObject(c.ObjectType) {
			hasPage = true
			break
		}
	}
	if !hasPage {
		return candidates
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if !IsTableObject(c.ObjectType) {
			kept = append(kept, c)
		}
	}
	return kept
}

func zeroYieldReason(diag MatchDiagnostics) string {
	switch {
	case diag.TextMatches == 0:
		return "no trans-unit target text matched the search text"
	case diag.PropertyFiltered > 0:
		return "all text matches were dropped by the property-id filter"
	case diag.AffinityFiltered > 0:
		return "all text matches were dropped by the page/table affinity filter"
	default:
		return "no text match had a parsable trans-unit id"
	}
}

func contentAreaFamily(area string) bool {
	return area == AreaContentArea || area == AreaGroup || area == AreaFieldGroup
}

func inputTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "input", "select", "textarea":
		return true
	}
	return false
}
