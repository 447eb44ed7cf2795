package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/ZaguanLabs/xliffai"
)

// SQLite is a file-backed correction store, used when corrections are
// exported locally instead of to a shared service.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS corrections (
	id                TEXT PRIMARY KEY,
	source            TEXT NOT NULL,
	normalized_source TEXT NOT NULL,
	target            TEXT NOT NULL,
	lang              TEXT NOT NULL,
	element_context   TEXT,
	translation_type  TEXT,
	area              TEXT,
	page_name         TEXT,
	table_name        TEXT,
	confidence        REAL NOT NULL DEFAULT 1.0,
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_corrections_lookup
	ON corrections (lang, normalized_source);
`

// OpenSQLite opens (and if needed initializes) a correction database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening correction db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing correction db: %w", err)
	}
	return &SQLite{db: db}, nil
}

// AddRecord stores one correction record. A missing id gets a ULID;
// a missing timestamp gets the current time. Manual corrections carry
// full confidence.
func (s *SQLite) AddRecord(ctx context.Context, rec xliffai.CorrectionRecord, lang string) error {
	id := rec.ID
	if id == "" {
		id = ulid.Make().String()
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO corrections
			(id, source, normalized_source, target, lang, element_context,
			 translation_type, area, page_name, table_name, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Source, xliffai.Normalize(rec.Source), rec.Target,
		xliffai.NormalizeLocale(lang), rec.ElementContext, rec.TranslationType,
		rec.Area, rec.PageName, rec.TableName, 1.0, ts.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing correction: %w", err)
	}
	return nil
}

// ExactLookup returns the newest stored correction for a text, or nil
// on miss.
func (s *SQLite) ExactLookup(ctx context.Context, text, lang string) (*Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT target, confidence FROM corrections
		WHERE lang = ? AND normalized_source = ?
		ORDER BY created_at DESC LIMIT 1`,
		xliffai.NormalizeLocale(lang), xliffai.Normalize(text))

	var m Match
	if err := row.Scan(&m.Target, &m.Confidence); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &xliffai.StoreError{Message: "exact lookup failed", Cause: err}
	}
	return &m, nil
}

// FuzzyLookup returns stored pairs whose normalized source contains any
// of the text's salient terms.
func (s *SQLite) FuzzyLookup(ctx context.Context, text, lang string) ([]Example, error) {
	terms := SalientTerms(text)
	if len(terms) == 0 {
		return nil, nil
	}
	if len(terms) > 3 {
		terms = terms[:3]
	}

	clauses := make([]string, len(terms))
	args := []any{xliffai.NormalizeLocale(lang)}
	for i, term := range terms {
		clauses[i] = "normalized_source LIKE ?"
		args = append(args, "%"+term+"%")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, target FROM corrections
		WHERE lang = ? AND (`+strings.Join(clauses, " OR ")+`)
		ORDER BY source LIMIT 20`, args...)
	if err != nil {
		return nil, &xliffai.StoreError{Message: "fuzzy lookup failed", Cause: err}
	}
	defer rows.Close()

	var examples []Example
	for rows.Next() {
		var ex Example
		if err := rows.Scan(&ex.Source, &ex.Target); err != nil {
			return nil, &xliffai.StoreError{Message: "fuzzy lookup scan failed", Cause: err}
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, &xliffai.StoreError{Message: "fuzzy lookup failed", Cause: err}
	}
	return dedupeBySource(examples), nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Verify SQLite implements Store
var _ Store = (*SQLite)(nil)
