package publish

import (
	"strings"
)

// MaxSlugLen bounds slug length so URLs stay short and stable.
const MaxSlugLen = 60

// diacritics folds accented characters to plain ASCII. Covers the Polish
// alphabet plus the Latin-1 accents that show up in tech vocabulary.
var diacritics = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ß", "ss",
)

// Slugify produces a deterministic URL slug: lower-case, folded to ASCII,
// only [a-z0-9-], no leading/trailing or doubled hyphens, at most MaxSlugLen
// characters.
func Slugify(title string) string {
	s := diacritics.Replace(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > MaxSlugLen {
		slug = slug[:MaxSlugLen]
		// A cut can land mid-word; prefer ending on the previous word.
		if i := strings.LastIndex(slug, "-"); i > 0 {
			slug = slug[:i]
		}
		slug = strings.Trim(slug, "-")
	}
	return slug
}
