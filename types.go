package xliffai

import (
	"context"
	"time"
)

// Property ids used by the XLIFF generator for the two UI property kinds.
const (
	CaptionPropertyID = "2879900210"
	ToolTipPropertyID = "1295455071"
)

// BC element types captured from the running client. These are distinct
// from the element types encoded in XLIFF unit ids and are mapped onto
// them by TypesAreCompatible.
const (
	ElementField   = "Field"
	ElementControl = "Control"
	ElementAction  = "Action"
	ElementColumn  = "Column"
	ElementTab     = "Tab"
	ElementCue     = "Cue"
)

// UI areas a capture can originate from.
const (
	AreaActionBar   = "ActionBar"
	AreaContentArea = "ContentArea"
	AreaList        = "List"
	AreaFactBox     = "FactBox"
	AreaGroup       = "Group"
	AreaFieldGroup  = "FieldGroup"
)

// Labels written to the translationSource attribute of rewritten targets.
const (
	TranslationSourceStore          = "cosmos"
	TranslationSourceAI             = "aiTranslator"
	TranslationSourceFile           = "file"
	TranslationSourceUserCorrection = "userCorrection"
)

// TransUnitIdentity is the decoded form of a trans-unit id string.
// PropertyID is always set; ElementType and ElementID are either both
// set or both empty.
type TransUnitIdentity struct {
	ObjectType  string // Table, Page, TableExtension, PageExtension, Codeunit, ...
	ObjectID    string
	ElementType string // Field, Control, Action, Column, ... (optional)
	ElementID   string
	PropertyID  string
}

// ElementContext describes where a piece of UI text was captured.
// Constructed once per match request and never mutated.
type ElementContext struct {
	ElementType  string // BC element type as captured (Field, Column, ...)
	PropertyType string // "Caption", "ToolTip" or empty
	IsToolTip    *bool  // explicit tooltip flag; takes precedence over PropertyType
	UIArea       string

	// DOM-derived fields, filled by ContextFromHTML when a fragment is
	// available.
	HTMLTag     string
	AriaRole    string
	AriaLabel   string
	Title       string
	Placeholder string
	InnerText   string

	// Flags is the decoded free-form flag bag (inActionBar, inGrid,
	// inFieldGroup, inContentArea).
	Flags map[string]bool

	PageName      string
	PageID        string
	TableName     string
	SourceTableID string
}

// TextCandidate is one weighted search text derived from a capture.
type TextCandidate struct {
	Text           string
	NormalizedText string
	Weight         float64 // in (0, 1]
	Origin         string  // which raw field produced it
}

// XliffCandidate is one ranked match produced by MatchCandidates.
// The matcher guarantees at most one candidate per unit id.
type XliffCandidate struct {
	UnitID      string
	SourceText  string
	TargetText  string
	ObjectType  string
	ObjectID    string
	ElementType string
	ElementID   string
	PropertyID  string
	Note        string
	Confidence  float64 // in [0, 1]
	MatchedVia  string  // origin of the text candidate that matched
	MatchedText string
}

// MatchDiagnostics explains a zero or low-yield match. Informational
// only; it never affects which candidates are returned.
type MatchDiagnostics struct {
	TextMatches      int // units whose target text matched before any filter
	PropertyFiltered int // dropped by the property-id filter
	AffinityFiltered int // dropped by the page/table affinity filter
	FinalCount       int
	SampleNotes      []string // up to 5 notes from text-matched units
	FilterReason     string   // set when FinalCount is zero
}

// MatchResult is the output of MatchCandidates.
type MatchResult struct {
	Candidates  []XliffCandidate
	Diagnostics MatchDiagnostics
}

// CorrectionRecord is a previously captured correction, produced by an
// external export step and read-only to this package.
type CorrectionRecord struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Target          string    `json:"target"`
	ElementContext  string    `json:"elementContext,omitempty"`
	TranslationType string    `json:"translationType,omitempty"` // Caption or ToolTip
	Area            string    `json:"area,omitempty"`
	PageName        string    `json:"pageName,omitempty"`
	PageID          string    `json:"pageId,omitempty"`
	TableName       string    `json:"tableName,omitempty"`
	SourceTableID   string    `json:"sourceTableId,omitempty"`
	Timestamp       time.Time `json:"timestamp,omitempty"`
}

// TranslationCandidate is one sampled translation with its per-token
// log-probabilities. Produced by a Provider, consumed by the confidence
// engine, then discarded.
type TranslationCandidate struct {
	Text          string
	TokenLogProbs []float64
}

// TranslateRequest contains the parameters for one provider call.
type TranslateRequest struct {
	Text        string
	SourceLang  string
	TargetLang  string
	NumOptions  int    // number of samples to request (default 1)
	PromptExtra string // appended to the prompt, used for enrichment
}

// Provider is the interface for AI translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]TranslationCandidate, error)
}

// StoreMatch is an exact-lookup hit from the correction store.
type StoreMatch struct {
	Target     string
	Confidence float64
}

// Example is a stored source/target pair retrieved by fuzzy lookup,
// used to enrich a low-confidence prompt.
type Example struct {
	Source string
	Target string
}

// Store is the interface for the external correction/lookup store.
// A miss is (nil, nil) for ExactLookup and an empty slice for
// FuzzyLookup; an unavailable store degrades to misses.
type Store interface {
	ExactLookup(ctx context.Context, text, lang string) (*StoreMatch, error)
	FuzzyLookup(ctx context.Context, text, lang string) ([]Example, error)
}

// TranslationResult is the outcome of an Engine.Translate call.
type TranslationResult struct {
	Text       string
	Confidence float64
	Source     string // TranslationSourceStore or TranslationSourceAI
	Enriched   bool   // true when the result came from the enrichment pass
	Samples    int    // provider samples scored for this result
}
