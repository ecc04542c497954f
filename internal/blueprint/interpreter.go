package blueprint

import (
	"regexp"
	"strings"
	"unicode"
)

// Fixed fallbacks for briefs that carry no usable signal
const (
	defaultTitle = "Prototype IA"
	defaultTheme = "Univers généré"
	defaultPitch = "Prototype de jeu généré automatiquement à partir d'un brief libre."
)

var defaultObjectives = []string{
	"Boucle principale : explorer l'environnement généré et récolter les fragments dispersés",
	"Progression : échapper aux menaces générées pour débloquer la zone suivante",
	"Ambiance : laisser la direction artistique générée porter l'exploration",
}

var defaultCollectibles = []string{"artefacts", "fragments", "souvenirs"}

// objectivePrefixes label objectives positionally: core loop first,
// then progression, then mood.
var objectivePrefixes = []string{"Boucle principale", "Progression", "Ambiance"}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	quotePattern      = regexp.MustCompile("[\"'`«»“”]")
	clauseSeparator   = regexp.MustCompile(`[\n.!?]+`)
)

// sanitize trims, collapses whitespace and drops quote characters
func sanitize(text string) string {
	text = quotePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitClauses cuts free text into sentence-like clauses
func splitClauses(text string) []string {
	var clauses []string
	for _, raw := range clauseSeparator.Split(text, -1) {
		if clause := sanitize(raw); clause != "" {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// titleCase uppercases the first letter of each word
func titleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Interpret derives a complete WorldModel from a brief. Every step has a
// deterministic fallback, so an entirely empty brief still produces a valid
// model built from defaults.
func Interpret(brief GameBrief) WorldModel {
	title := sanitize(brief.Title)
	theme := sanitize(brief.Theme)
	description := sanitize(brief.Description)

	keywords := ExtractKeywords(description)
	if len(keywords) == 0 {
		keywords = ExtractKeywords(theme)
	}
	if len(keywords) == 0 {
		keywords = ExtractKeywords(title)
	}

	if title == "" {
		if len(keywords) > 0 {
			end := 2
			if len(keywords) < end {
				end = len(keywords)
			}
			title = titleCase(strings.Join(keywords[:end], " "))
		} else {
			title = defaultTitle
		}
	}

	if theme == "" {
		if len(keywords) > 0 {
			theme = "Univers " + keywords[0]
		} else {
			theme = defaultTheme
		}
	}

	haystack := Fold(theme + " " + description)

	environment, ok := matchEnvironment(haystack)
	if !ok {
		environment = "Monde singulier inspiré de " + theme + ", façonné par le brief fourni"
	}

	palette := matchPalette(haystack)

	clauses := splitClauses(description)
	objectives := buildObjectives(clauses)

	enemies := extractRoster(clauses, enemyPattern)
	if len(enemies) == 0 {
		enemies = keywordRoster(keywords, 0, 3)
	}

	companions := extractRoster(clauses, companionPattern)
	if len(companions) == 0 {
		companions = keywordRoster(keywords, 3, 6)
	}

	return WorldModel{
		Title:        title,
		Theme:        theme,
		Description:  description,
		Environment:  environment,
		Palette:      palette,
		Objectives:   objectives,
		Enemies:      enemies,
		Companions:   companions,
		Collectibles: buildCollectibles(objectives, keywords),
		Keywords:     keywords,
	}
}

// buildObjectives labels up to 3 description clauses positionally,
// falling back to the generic generated objectives.
func buildObjectives(clauses []string) []string {
	if len(clauses) == 0 {
		return append([]string(nil), defaultObjectives...)
	}

	count := len(clauses)
	if count > len(objectivePrefixes) {
		count = len(objectivePrefixes)
	}

	objectives := make([]string, 0, count)
	for i := 0; i < count; i++ {
		objectives = append(objectives, objectivePrefixes[i]+" : "+clauses[i])
	}
	return objectives
}

// StripObjectivePrefix removes the positional label from an objective
func StripObjectivePrefix(objective string) string {
	if idx := strings.Index(objective, " : "); idx >= 0 {
		return objective[idx+3:]
	}
	return objective
}

// extractRoster pulls title-cased labels from clauses matching a roster
// pattern; each matching clause contributes one label of up to 3
// significant words.
func extractRoster(clauses []string, pattern *regexp.Regexp) []string {
	var labels []string
	for _, clause := range clauses {
		if !pattern.MatchString(Fold(clause)) {
			continue
		}

		var words []string
		for _, word := range strings.Fields(clause) {
			cleaned := sanitize(word)
			if len([]rune(cleaned)) <= 3 || IsStopWord(Fold(cleaned)) {
				continue
			}
			words = append(words, cleaned)
			if len(words) == 3 {
				break
			}
		}
		if len(words) > 0 {
			labels = append(labels, titleCase(strings.Join(words, " ")))
		}
	}
	return labels
}

// keywordRoster title-cases a slice of the keyword list as roster fallback
func keywordRoster(keywords []string, from, to int) []string {
	if from >= len(keywords) {
		return nil
	}
	if to > len(keywords) {
		to = len(keywords)
	}
	var labels []string
	for _, keyword := range keywords[from:to] {
		labels = append(labels, titleCase(keyword))
	}
	return labels
}

// buildCollectibles unions objective-derived labels with leftover keywords,
// capped at 6. The result sizes the in-game pickup set 1:1.
func buildCollectibles(objectives, keywords []string) []string {
	const maxCollectibles = 6

	seen := make(map[string]bool)
	var collectibles []string

	add := func(label string) {
		if label == "" || len(collectibles) >= maxCollectibles {
			return
		}
		key := Fold(label)
		if seen[key] {
			return
		}
		seen[key] = true
		collectibles = append(collectibles, label)
	}

	for _, objective := range objectives {
		add(firstSignificantWord(StripObjectivePrefix(objective)))
	}
	for _, keyword := range keywords {
		add(keyword)
	}

	if len(collectibles) == 0 {
		collectibles = append([]string(nil), defaultCollectibles...)
	}
	return collectibles
}

// firstSignificantWord returns the first non-stopword of 4+ letters
func firstSignificantWord(text string) string {
	for _, word := range strings.Fields(text) {
		if len([]rune(word)) >= 4 && !IsStopWord(Fold(word)) {
			return strings.ToLower(word)
		}
	}
	return ""
}
