package xliffai

import (
	"fmt"
	"regexp"
	"strings"
)

// ApplyResult is the outcome of a document mutation.
type ApplyResult struct {
	Document string
	Changed  bool
}

var (
	selfClosingTargetRe = regexp.MustCompile(`(?i)<target[^>]*/>`)
	closeSourceRe       = regexp.MustCompile(`(?is)</source>`)
	indentRe            = regexp.MustCompile(`(?m)^([ \t]+)<(?:source|target)\b`)
	needsStateRe        = regexp.MustCompile(`(?i)<target[^>]*state="needs-[^"]*"`)
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// ApplyTranslation rewrites the <target> element of the trans-unit with
// the given id, leaving every other unit and all surrounding formatting
// untouched. When the existing target already holds the same text (after
// normalization) the document is returned unchanged, so re-applying a
// correction is a no-op. The rewrite is a single-block splice: the
// document is never left partially rewritten.
func ApplyTranslation(document, unitID, translated string, confidence float64, source string) (ApplyResult, error) {
	blockRe := regexp.MustCompile(
		`(?is)(<trans-unit\s+id="` + regexp.QuoteMeta(unitID) + `"[^>]*>)(.*?)(</trans-unit>)`)

	loc := blockRe.FindStringSubmatchIndex(document)
	if loc == nil {
		return ApplyResult{Document: document}, &UnitNotFoundError{UnitID: unitID}
	}

	body := document[loc[4]:loc[5]]
	newBody, changed := rewriteTarget(body, translated, confidence, source)
	if !changed {
		return ApplyResult{Document: document}, nil
	}

	return ApplyResult{
		Document: document[:loc[4]] + newBody + document[loc[5]:],
		Changed:  true,
	}, nil
}

// ApplyTranslationBySource locates the first trans-unit whose source
// text normalizes to the given needle and whose target is still awaiting
// translation (absent, self-closing, or in a needs-* state), then
// rewrites it like ApplyTranslation. Used by single-selection flows
// where the caller does not yet know the unit id.
func ApplyTranslationBySource(document, sourceText, translated string, confidence float64, source string) (ApplyResult, error) {
	needle := Normalize(sourceText)

	for _, loc := range transUnitRe.FindAllStringSubmatchIndex(document, -1) {
		body := document[loc[4]:loc[5]]

		src := sourceTagRe.FindStringSubmatch(body)
		if src == nil || Normalize(src[1]) != needle {
			continue
		}
		if !awaitingTranslation(body) {
			continue
		}

		newBody, changed := rewriteTarget(body, translated, confidence, source)
		if !changed {
			return ApplyResult{Document: document}, nil
		}
		return ApplyResult{
			Document: document[:loc[4]] + newBody + document[loc[5]:],
			Changed:  true,
		}, nil
	}

	return ApplyResult{Document: document}, &UnitNotFoundError{SourceText: sourceText}
}

// rewriteTarget replaces, or inserts, the <target> element inside one
// trans-unit body. Returns the body unchanged when the existing target
// already matches the new text.
func rewriteTarget(body, translated string, confidence float64, source string) (string, bool) {
	newTarget := fmt.Sprintf(`<target state="translated" confidence="%.2f" translationSource="%s">%s</target>`,
		confidence, source, xmlEscaper.Replace(translated))

	if loc := targetTagRe.FindStringSubmatchIndex(body); loc != nil {
		existing := body[loc[2]:loc[3]]
		if Normalize(existing) == Normalize(translated) {
			return body, false
		}
		return body[:loc[0]] + newTarget + body[loc[1]:], true
	}

	if loc := selfClosingTargetRe.FindStringIndex(body); loc != nil {
		return body[:loc[0]] + newTarget + body[loc[1]:], true
	}

	// No target element at all: insert one right after </source>,
	// matching the block's indentation.
	if loc := closeSourceRe.FindStringIndex(body); loc != nil {
		indent := "    "
		if m := indentRe.FindStringSubmatch(body); m != nil {
			indent = m[1]
		}
		return body[:loc[1]] + "\n" + indent + newTarget + body[loc[1]:], true
	}

	return body, false
}

// awaitingTranslation reports whether a trans-unit body still needs a
// translation: no target, a self-closing target, or a target in one of
// the needs-* states.
func awaitingTranslation(body string) bool {
	if needsStateRe.MatchString(body) {
		return true
	}
	if targetTagRe.MatchString(body) {
		return false
	}
	return true
}
