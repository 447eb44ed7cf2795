package xliffai

// CorrectionStatus classifies the outcome of applying one correction.
type CorrectionStatus string

const (
	CorrectionApplied   CorrectionStatus = "applied"
	CorrectionUnchanged CorrectionStatus = "unchanged"
	CorrectionConflict  CorrectionStatus = "conflict"
	CorrectionNoMatch   CorrectionStatus = "noMatch"
)

// CorrectionOutcome reports what happened to one record during a batch
// application.
type CorrectionOutcome struct {
	Record CorrectionRecord
	UnitID string
	Status CorrectionStatus
	Reason string
}

// ApplyCorrections matches each correction record against the document
// and applies its target text to the best candidate. Records are
// processed in order; when two records resolve to the same unit id with
// different text, the first-seen mapping wins and the later record is
// reported as a conflict. No record failure is fatal, and the document
// is rewritten one unit at a time so it is never left partially edited.
func ApplyCorrections(document string, records []CorrectionRecord, policy ScoringPolicy) (string, []CorrectionOutcome) {
	outcomes := make([]CorrectionOutcome, 0, len(records))
	claimed := make(map[string]string) // unit id -> target text

	for _, rec := range records {
		ctx := contextFromRecord(rec)
		texts := BuildTextCandidates(rec.Source, ctx)

		result := MatchCandidates(document, texts, ctx, policy)
		if len(result.Candidates) == 0 {
			outcomes = append(outcomes, CorrectionOutcome{
				Record: rec,
				Status: CorrectionNoMatch,
				Reason: result.Diagnostics.FilterReason,
			})
			continue
		}

		top := result.Candidates[0]
		if prev, ok := claimed[top.UnitID]; ok && prev != rec.Target {
			outcomes = append(outcomes, CorrectionOutcome{
				Record: rec,
				UnitID: top.UnitID,
				Status: CorrectionConflict,
				Reason: "unit already claimed by an earlier correction",
			})
			continue
		}
		claimed[top.UnitID] = rec.Target

		// Manual corrections are the one place full confidence is
		// written.
		applied, err := ApplyTranslation(document, top.UnitID, rec.Target, 1.0, TranslationSourceUserCorrection)
		if err != nil {
			outcomes = append(outcomes, CorrectionOutcome{
				Record: rec,
				UnitID: top.UnitID,
				Status: CorrectionNoMatch,
				Reason: err.Error(),
			})
			continue
		}

		status := CorrectionApplied
		if !applied.Changed {
			status = CorrectionUnchanged
		}
		document = applied.Document
		outcomes = append(outcomes, CorrectionOutcome{
			Record: rec,
			UnitID: top.UnitID,
			Status: status,
		})
	}

	return document, outcomes
}

// contextFromRecord rebuilds the capture context stored on a correction
// record.
func contextFromRecord(rec CorrectionRecord) ElementContext {
	return ElementContext{
		ElementType:   rec.ElementContext,
		PropertyType:  rec.TranslationType,
		UIArea:        rec.Area,
		PageName:      rec.PageName,
		PageID:        rec.PageID,
		TableName:     rec.TableName,
		SourceTableID: rec.SourceTableID,
	}
}
