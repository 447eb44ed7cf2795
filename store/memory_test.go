package store

import (
	"context"
	"testing"
	"time"

	"github.com/ZaguanLabs/xliffai"
)

func correctionRecord(source, target string) xliffai.CorrectionRecord {
	return xliffai.CorrectionRecord{
		Source:          source,
		Target:          target,
		ElementContext:  xliffai.ElementField,
		TranslationType: "Caption",
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemory_ExactLookup(t *testing.T) {
	m := NewMemory()
	m.Add("Item No.", "Artikelnr.", "de-DE", 1.0)

	match, err := m.ExactLookup(context.Background(), "Item No.", "de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil || match.Target != "Artikelnr." || match.Confidence != 1.0 {
		t.Errorf("match = %+v, want the stored correction", match)
	}

	// Lookup goes through normalization, so markup and casing do not
	// matter.
	match, err = m.ExactLookup(context.Background(), "  ITEM no. ", "de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Error("normalized variant must hit")
	}

	miss, err := m.ExactLookup(context.Background(), "Item No.", "fr-FR")
	if err != nil {
		t.Fatal(err)
	}
	if miss != nil {
		t.Error("other language must miss")
	}
}

func TestMemory_FuzzyLookup(t *testing.T) {
	m := NewMemory()
	m.Add("Item No.", "Artikelnr.", "de-DE", 1.0)
	m.Add("Item Card", "Artikelkarte", "de-DE", 1.0)
	m.Add("Posting Date", "Buchungsdatum", "de-DE", 1.0)

	examples, err := m.FuzzyLookup(context.Background(), "Item Description", "de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 2 {
		t.Fatalf("got %d examples, want the two item entries: %+v", len(examples), examples)
	}
	for _, ex := range examples {
		if ex.Source == "Posting Date" {
			t.Error("unrelated entry returned")
		}
	}

	// The looked-up text itself is never returned as its own example.
	examples, err = m.FuzzyLookup(context.Background(), "Item No.", "de-DE")
	if err != nil {
		t.Fatal(err)
	}
	for _, ex := range examples {
		if ex.Source == "Item No." {
			t.Error("lookup text returned as its own example")
		}
	}
}

func TestMemory_FuzzyLookupBounded(t *testing.T) {
	m := NewMemory()
	sources := []string{
		"Item One", "Item Two", "Item Three", "Item Four",
		"Item Five", "Item Six", "Item Seven",
	}
	for _, s := range sources {
		m.Add(s, "x", "de-DE", 1.0)
	}

	examples, err := m.FuzzyLookup(context.Background(), "Item Zero", "de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) > MaxFuzzyResults {
		t.Errorf("got %d examples, want at most %d", len(examples), MaxFuzzyResults)
	}
}

func TestMemory_FuzzyLookupDeterministic(t *testing.T) {
	m := NewMemory()
	for _, s := range []string{"Item A", "Item B", "Item C", "Item D", "Item E", "Item F"} {
		m.Add(s, "x", "de-DE", 1.0)
	}

	first, _ := m.FuzzyLookup(context.Background(), "Item", "de-DE")
	for i := 0; i < 5; i++ {
		again, _ := m.FuzzyLookup(context.Background(), "Item", "de-DE")
		if len(again) != len(first) {
			t.Fatal("result size varies between runs")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatal("result order varies between runs")
			}
		}
	}
}

func TestMemory_AddRecordAndClear(t *testing.T) {
	m := NewMemory()
	rec := correctionRecord("Item", "Artikel")
	if err := m.AddRecord(context.Background(), rec, "de-DE"); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	match, _ := m.ExactLookup(context.Background(), "Item", "de-DE")
	if match == nil || match.Confidence != 1.0 {
		t.Errorf("match = %+v, want a full-confidence record", match)
	}

	m.Clear()
	if m.Len() != 0 {
		t.Error("Clear must empty the store")
	}
	if match, _ := m.ExactLookup(context.Background(), "Item", "de-DE"); match != nil {
		t.Error("cleared entry still resolvable")
	}
}

func TestSalientTerms(t *testing.T) {
	terms := SalientTerms("The Item No. and the Posting Date")
	want := []string{"item", "posting", "date"}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("terms = %v, want %v", terms, want)
			break
		}
	}
}

func TestKey_NormalizesTextAndLocale(t *testing.T) {
	if Key("Item  No.", "de-DE") != Key("item no.", "de_DE") {
		t.Error("key must be insensitive to whitespace, casing and locale format")
	}
	if Key("Item", "de-DE") == Key("Item", "fr-FR") {
		t.Error("keys for different languages must differ")
	}
}
