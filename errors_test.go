package xliffai

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
	}{
		{"translation", &TranslationError{Message: "translate", Cause: cause}},
		{"provider", &ProviderError{Message: "call failed", Cause: cause}},
		{"store", &StoreError{Message: "lookup failed", Cause: cause}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("%v does not unwrap to its cause", tt.err)
			}
			if !strings.Contains(tt.err.Error(), "connection refused") {
				t.Errorf("message %q omits the cause", tt.err.Error())
			}
		})
	}
}

func TestUnitNotFoundError_Message(t *testing.T) {
	byID := &UnitNotFoundError{UnitID: "Table 1 - Property 2"}
	if !strings.Contains(byID.Error(), "Table 1 - Property 2") {
		t.Errorf("message %q omits the unit id", byID.Error())
	}

	bySource := &UnitNotFoundError{SourceText: "Item"}
	if !strings.Contains(bySource.Error(), "Item") {
		t.Errorf("message %q omits the source text", bySource.Error())
	}
}
