// Package xliffai matches captured UI text to trans-units in Business
// Central XLIFF documents and scores AI translations for them.
//
// The matching side takes a piece of text captured from a running page
// (a caption, tooltip or column header) plus metadata about where it was
// captured, scans an XLIFF document for trans-units whose target text
// matches, and ranks the candidates by confidence. Accepted candidates
// are written back with an idempotent, format-preserving rewrite of the
// unit's <target> element.
//
// The translation side sends free text to an AI provider, derives a
// confidence score from token log-probabilities, placeholder
// preservation and cross-sample agreement, and runs one enrichment
// retry with fuzzy examples when the score is low.
//
// Basic matching:
//
//	ctx := xliffai.ElementContext{ElementType: "Field", PropertyType: "Caption"}
//	cands := xliffai.BuildTextCandidates("Item", ctx)
//	res := xliffai.MatchCandidates(doc, cands, ctx, xliffai.DefaultScoringPolicy())
//	if len(res.Candidates) > 0 {
//	    applied, _ := xliffai.ApplyTranslation(doc, res.Candidates[0].UnitID,
//	        "Artikel", res.Candidates[0].Confidence, xliffai.TranslationSourceAI)
//	    doc = applied.Document
//	}
//
// Translation with confidence scoring:
//
//	p := provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: key})
//	e := xliffai.NewEngine("de-DE", p,
//	    xliffai.WithStore(store.NewMemory()),
//	    xliffai.WithNumOptions(3),
//	)
//	result, err := e.Translate(context.Background(), "Copy %1 items")
package xliffai
