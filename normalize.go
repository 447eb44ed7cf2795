package xliffai

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	cdataRe   = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	entityRe  = regexp.MustCompile(`&(#x?[0-9a-fA-F]+|[a-zA-Z]+);`)
	hotkeyRe  = regexp.MustCompile(`&(\w)`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
	namedRefs = map[string]string{
		"lt":   "<",
		"gt":   ">",
		"quot": `"`,
		"apos": "'",
		"nbsp": " ",
	}
)

// Normalize reduces a captured or stored string to its canonical
// comparison key: CDATA sections are unwrapped, XML entities and
// character references decoded, hotkey ampersands dropped, remaining
// markup stripped, whitespace collapsed, and the result lower-cased.
//
// The same function must be applied to both the searched-for text and
// every stored target text; exact matching depends on it. It is pure,
// total and idempotent.
func Normalize(raw string) string {
	s := cdataRe.ReplaceAllString(raw, "$1")

	// Decode entities and character references. Unknown entities keep
	// their ampersand behind a sentinel so the hotkey pass below does
	// not eat it.
	s = entityRe.ReplaceAllStringFunc(s, decodeEntity)

	// An & immediately followed by a word character is hotkey markup,
	// not an entity: drop the ampersand, keep the letter. This runs
	// after &amp; decoding so the result is stable under a second
	// Normalize.
	s = hotkeyRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, ampSentinel, "&")

	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

const ampSentinel = "\x00amp\x00"

func decodeEntity(match string) string {
	ref := match[1 : len(match)-1]

	if strings.HasPrefix(ref, "#") {
		var n int64
		var err error
		if len(ref) > 2 && (ref[1] == 'x' || ref[1] == 'X') {
			n, err = strconv.ParseInt(ref[2:], 16, 32)
		} else {
			n, err = strconv.ParseInt(ref[1:], 10, 32)
		}
		if err != nil || n <= 0 {
			return match
		}
		if n == 0xa0 {
			return " "
		}
		return string(rune(n))
	}

	lower := strings.ToLower(ref)
	if lower == "amp" {
		return "&"
	}
	if decoded, ok := namedRefs[lower]; ok {
		return decoded
	}
	// Unknown entity: keep it verbatim, but shield the ampersand so the
	// hotkey pass does not eat it.
	return ampSentinel + ref + ";"
}
