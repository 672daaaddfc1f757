// Package screening deduplicates imported records and screens them against
// the eligibility criteria. Each step consumes one immutable record type and
// produces the next; nothing is edited in place.
package screening

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// foldTransformer strips diacritics so that accented and plain spellings of
// the same title collide on one deduplication key.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Deduplicate collapses raw records sharing a deduplication key. The DOI is
// the key when present, otherwise the normalized title. The first occurrence
// wins; input order is preserved.
func Deduplicate(records []study.RawRecord) []study.Record {
	seen := make(map[string]bool, len(records))
	out := make([]study.Record, 0, len(records))
	for _, r := range records {
		key := DedupeKey(r)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, study.Record{RawRecord: r, Key: key})
	}
	return out
}

// DedupeKey returns the normalized deduplication key for a record.
func DedupeKey(r study.RawRecord) string {
	if doi := strings.TrimSpace(strings.ToLower(r.DOI)); doi != "" {
		return "doi:" + doi
	}
	if title := NormalizeTitle(r.Title); title != "" {
		return "title:" + title
	}
	return ""
}

// NormalizeTitle lowercases a title, folds diacritics, drops punctuation and
// collapses whitespace.
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(foldTransformer, title)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
