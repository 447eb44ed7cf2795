package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ZaguanLabs/xliffai"
)

// HashText computes the SHA-256 hash of a text's normalized form, so
// lookups are insensitive to markup and casing the same way matching is.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(xliffai.Normalize(text)))
	return hex.EncodeToString(hash[:])
}

// Key generates a lookup key from a text and target language.
func Key(text, lang string) string {
	return HashText(text) + ":" + xliffai.NormalizeLocale(lang)
}
