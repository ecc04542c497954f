package blueprint

import (
	"regexp"
	"strings"
)

// environmentRule maps a keyword set to a descriptive environment sentence
type environmentRule struct {
	Keywords []string
	Label    string
}

// paletteRule maps a keyword set to a 3-color palette
type paletteRule struct {
	Keywords []string
	Colors   []string
}

// Rules are evaluated first-match-wins against a folded haystack
// (theme + " " + description). Keyword sets are stored folded.
var environmentRules = []environmentRule{
	{
		Keywords: []string{"foret", "bois", "jungle", "sylve", "clairiere", "arbre"},
		Label:    "Forêt dense aux canopées luminescentes, traversée de clairières secrètes",
	},
	{
		Keywords: []string{"desert", "dune", "sable", "canyon", "oasis"},
		Label:    "Désert brûlant strié de dunes ocre et de canyons balayés par le vent",
	},
	{
		Keywords: []string{"neige", "glace", "arctique", "banquise", "hiver", "givre"},
		Label:    "Étendue polaire de glace bleutée où la neige étouffe chaque son",
	},
	{
		Keywords: []string{"cyber", "neon", "futur", "synthwave", "hacker", "megalopole"},
		Label:    "Mégalopole cyberpunk saturée de néons et de pluie électrique",
	},
	{
		Keywords: []string{"espace", "galaxie", "cosmos", "etoile", "orbite", "lune"},
		Label:    "Station orbitale dérivant parmi les nébuleuses et les champs d'étoiles",
	},
	{
		Keywords: []string{"ocean", "abysse", "marin", "corail", "lagon", "recif"},
		Label:    "Abysses océaniques éclairés par des coraux bioluminescents",
	},
	{
		Keywords: []string{"mystique", "magie", "arcane", "sorcier", "rune", "temple"},
		Label:    "Sanctuaire mystique suspendu entre les runes et les brumes arcaniques",
	},
}

var paletteRules = []paletteRule{
	{Keywords: []string{"foret", "jungle", "bois", "nature"}, Colors: []string{"#0f2b1d", "#1f6f43", "#a3ffcf"}},
	{Keywords: []string{"desert", "sable", "dune", "canyon"}, Colors: []string{"#3c1f03", "#c7721e", "#fbd88d"}},
	{Keywords: []string{"neige", "glace", "arctique", "banquise"}, Colors: []string{"#0c2740", "#3f7fbf", "#e8f7ff"}},
	{Keywords: []string{"cyber", "neon", "futur", "synthwave"}, Colors: []string{"#14001f", "#8a2be2", "#00f5d4"}},
	{Keywords: []string{"volcan", "lave", "braise", "inferno"}, Colors: []string{"#1a0505", "#b3261e", "#ffb26b"}},
}

// defaultPalette is used when no palette rule matches
var defaultPalette = []string{"#0b1f3a", "#3b5bdb", "#9ad0ff"}

// Clause patterns are matched against folded clauses, so the accented
// spellings (créature, démon, allié) fold onto the forms below.
var (
	enemyPattern     = regexp.MustCompile(`boss|ennemi|enemie|monstre|creature|assassin|robot|demon|pirate|soldat|drone|mecha`)
	companionPattern = regexp.MustCompile(`allie|compagnon|ami|guide|esprit|gardien`)
)

// matchEnvironment resolves the environment sentence for a folded haystack
func matchEnvironment(haystack string) (string, bool) {
	for _, rule := range environmentRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				return rule.Label, true
			}
		}
	}
	return "", false
}

// matchPalette resolves the 3-color palette for a folded haystack
func matchPalette(haystack string) []string {
	for _, rule := range paletteRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				return append([]string(nil), rule.Colors...)
			}
		}
	}
	return append([]string(nil), defaultPalette...)
}
