package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSearchable = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	nonTagChars   = regexp.MustCompile(`[^a-zA-Z0-9\-_\s]`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// foldDiacritics strips combining marks so "café" indexes as "cafe",
// matching the remove_diacritics setting of the FTS tokenizer.
func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// CleanText normalizes free text into canonical searchable form.
// Apostrophes are dropped first so contractions collapse ("it's" -> "its"),
// every other non-alphanumeric rune becomes a space, runs of whitespace
// collapse to one space, and the result is lowercased and trimmed.
// Pure and total: any input yields a (possibly empty) clean string.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "'", "")
	text = foldDiacritics(text)
	text = nonSearchable.ReplaceAllString(text, " ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	return strings.TrimSpace(text)
}

// CleanTag normalizes a user-supplied tag token. Stricter charset than
// CleanText but case-preserving: hyphen and underscore survive.
func CleanTag(token string) string {
	token = nonTagChars.ReplaceAllString(token, " ")
	return strings.TrimSpace(token)
}

// PrepareSearch turns raw user input into a safe FTS5 query string.
// Each cleaned word is double-quoted (embedded quotes doubled) and given a
// prefix star, so FTS operator syntax in user input cannot be interpreted
// as operators. Returns "" when nothing searchable remains; callers treat
// that as a zero-row query, not an error.
func PrepareSearch(text string) string {
	words := strings.Fields(CleanText(text))
	if len(words) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ReplaceAll(word, `"`, `""`)
		quoted = append(quoted, `"`+word+`"*`)
	}

	return strings.Join(quoted, " ")
}
