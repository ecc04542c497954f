package blueprint

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxKeywords bounds the number of keywords extracted from a brief
const MaxKeywords = 12

// minKeywordLength is the shortest token considered significant
const minKeywordLength = 4

var wordPattern = regexp.MustCompile(`[a-z]{4,}`)

// foldTransform decomposes accented characters and drops combining marks
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopWords are common French function words excluded from keyword extraction.
// Stored in folded form since they are matched after Fold.
var stopWords = map[string]bool{
	"ainsi": true, "alors": true, "apres": true, "aussi": true, "autre": true,
	"autres": true, "avant": true, "avec": true, "avoir": true, "ayant": true,
	"beaucoup": true, "bien": true, "cela": true, "ceci": true, "celle": true,
	"celles": true, "celui": true, "cette": true, "ceux": true, "chaque": true,
	"chez": true, "comme": true, "contre": true, "dans": true, "deja": true,
	"depuis": true, "dois": true, "doit": true, "doivent": true, "donc": true,
	"dont": true, "elle": true, "elles": true, "encore": true, "enfin": true,
	"ensuite": true, "entre": true, "esperer": true, "etaient": true,
	"etait": true, "etant": true, "etes": true, "etre": true, "faire": true,
	"fait": true, "faut": true, "jamais": true, "laquelle": true,
	"lequel": true, "lesquels": true, "leur": true, "leurs": true,
	"lors": true, "lorsque": true, "mais": true, "meme": true, "memes": true,
	"moins": true, "notre": true, "nous": true, "parmi": true, "pendant": true,
	"peut": true, "peuvent": true, "plus": true, "plusieurs": true,
	"pour": true, "pouvoir": true, "puis": true, "quand": true, "quel": true,
	"quelle": true, "quelles": true, "quelques": true, "quels": true,
	"sans": true, "selon": true, "sera": true, "seront": true,
	"seulement": true, "sommes": true, "sont": true, "souvent": true,
	"sous": true, "toujours": true, "tous": true, "tout": true, "toute": true,
	"toutes": true, "tres": true, "trop": true, "vers": true, "votre": true,
	"vous": true,
}

// Fold lowercases text and strips diacritics (forêt -> foret)
func Fold(text string) string {
	folded, _, err := transform.String(foldTransform, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// ExtractKeywords returns up to MaxKeywords significant words from free text,
// deduplicated in first-seen order with stop words removed. Empty or
// pure-stopword input yields an empty list; callers fall back to defaults.
func ExtractKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var keywords []string

	for _, token := range wordPattern.FindAllString(Fold(text), -1) {
		if len(token) < minKeywordLength || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) >= MaxKeywords {
			break
		}
	}

	return keywords
}

// IsStopWord reports whether a folded token is a French function word
func IsStopWord(token string) bool {
	return stopWords[token]
}
