package xliffai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ExpectedPropertyID derives the property id a match should carry. The
// explicit tooltip flag wins; otherwise the free-text property type is
// matched case-insensitively. An empty result means no property filter
// is applied and any property id is accepted.
func ExpectedPropertyID(ctx ElementContext) string {
	if ctx.IsToolTip != nil {
		if *ctx.IsToolTip {
			return ToolTipPropertyID
		}
		return CaptionPropertyID
	}
	switch strings.ToLower(strings.TrimSpace(ctx.PropertyType)) {
	case "tooltip":
		return ToolTipPropertyID
	case "caption":
		return CaptionPropertyID
	}
	return ""
}

// PlausibleElementTypes returns the set of XLIFF element types the
// capture could plausibly correspond to. Every signal contributes with
// OR semantics; the result is a permissive candidate set, not a strict
// filter.
func PlausibleElementTypes(ctx ElementContext) map[string]bool {
	types := make(map[string]bool)
	add := func(ts ...string) {
		for _, t := range ts {
			types[t] = true
		}
	}

	if ctx.ElementType != "" {
		add(ctx.ElementType)
		// List-page columns frequently inherit their caption from the
		// backing table's field or from an explicit page-control
		// override, so Column always brings Field and Control along.
		if equalFold(ctx.ElementType, ElementColumn) {
			add(ElementField, ElementControl)
		}
	}

	switch ctx.UIArea {
	case AreaActionBar:
		add(ElementAction)
	case AreaList:
		add(ElementColumn, ElementField, ElementControl)
	case AreaContentArea, AreaGroup, AreaFieldGroup:
		add(ElementField, ElementControl)
	}

	switch strings.ToLower(ctx.HTMLTag) {
	case "button":
		add(ElementAction)
	case "input", "select", "textarea":
		add(ElementField, ElementControl)
	}

	switch strings.ToLower(ctx.AriaRole) {
	case "columnheader":
		add(ElementColumn, ElementField, ElementControl)
	case "button":
		add(ElementAction)
	}

	if ctx.Flags["inActionBar"] {
		add(ElementAction)
	}
	if ctx.Flags["inGrid"] {
		add(ElementColumn, ElementField, ElementControl)
	}
	if ctx.Flags["inFieldGroup"] || ctx.Flags["inContentArea"] {
		add(ElementField, ElementControl)
	}

	return types
}

// TypesAreCompatible reports whether an XLIFF element type satisfies a
// BC element type. Beyond reflexive case-insensitive equality there are
// exactly four aliasing rules:
//
//	XLIFF "Control"          satisfies BC "Field"
//	XLIFF "Field"            satisfies BC "Column"
//	XLIFF "Control"          satisfies BC "Column"
//	XLIFF "Action"           satisfies BC "Action"
//
// The table is fixed, not derived.
func TypesAreCompatible(xliffType, bcType string) bool {
	if equalFold(xliffType, bcType) {
		return true
	}
	if equalFold(bcType, ElementField) && equalFold(xliffType, ElementControl) {
		return true
	}
	if equalFold(bcType, ElementColumn) &&
		(equalFold(xliffType, ElementField) || equalFold(xliffType, ElementControl)) {
		return true
	}
	return false
}

// ParseFlagBag decodes the custom JSON flag bag captured alongside an
// element ("inActionBar", "inGrid", ...) into a typed map. Malformed
// JSON yields an empty map, never an error.
func ParseFlagBag(raw string) map[string]bool {
	flags := make(map[string]bool)
	if strings.TrimSpace(raw) == "" {
		return flags
	}
	var bag map[string]any
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		return flags
	}
	for k, v := range bag {
		switch val := v.(type) {
		case bool:
			flags[k] = val
		case string:
			flags[k] = equalFold(val, "true")
		}
	}
	return flags
}

// pageNameSuffixes are the naming-convention suffixes stripped when
// deriving a table name from a page name. The list is a known
// approximation tied to English BC naming conventions; do not extend it
// without evidence.
var pageNameSuffixes = []string{"List", "Card", "SubPage", "SubForm", "Part", "FactBox", "Setup"}

// DeriveTableName guesses the backing table name for a page by stripping
// a conventional suffix ("Item List" -> "Item").
func DeriveTableName(pageName string) string {
	name := strings.TrimSpace(pageName)
	for _, suffix := range pageNameSuffixes {
		if len(name) > len(suffix) && equalFold(name[len(name)-len(suffix):], suffix) {
			return strings.TrimSpace(name[:len(name)-len(suffix)])
		}
	}
	return name
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// foldAlnum lower-cases a name and strips everything that is not a
// letter or digit, for the loose table-name comparison fallback.
func foldAlnum(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
