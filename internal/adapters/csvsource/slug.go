package csvsource

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugWords caps quote slugs so long quotes keep readable paths.
const maxSlugWords = 8

// Slugify folds s to a lowercase, dash separated path segment.
// Accents are removed ("Café" → "cafe"), apostrophes are dropped
// ("Don't" → "dont") and any other run of non letters or digits becomes a
// single dash.
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder

	pendingDash := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingDash = false

			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}

	return b.String()
}

// quoteSlug is the slug of the first maxSlugWords words of a quote.
func quoteSlug(text string) string {
	words := strings.Split(Slugify(text), "-")
	if len(words) > maxSlugWords {
		words = words[:maxSlugWords]
	}

	return strings.Join(words, "-")
}
