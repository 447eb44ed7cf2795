package xliffai

import "fmt"

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit,
// model still loading, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// StoreError indicates a correction-store operation failure.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// UnitNotFoundError indicates the mutator could not locate the addressed
// trans-unit in the document.
type UnitNotFoundError struct {
	UnitID     string
	SourceText string // set instead of UnitID for source-addressed lookups
}

func (e *UnitNotFoundError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("trans-unit %q not found", e.UnitID)
	}
	return fmt.Sprintf("no untranslated trans-unit with source %q", e.SourceText)
}

// SampleCountError indicates the provider returned a different number of
// samples than requested.
type SampleCountError struct {
	Expected int
	Got      int
}

func (e *SampleCountError) Error() string {
	return fmt.Sprintf("sample count mismatch: expected %d, got %d", e.Expected, e.Got)
}
