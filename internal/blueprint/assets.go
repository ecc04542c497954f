package blueprint

import (
	"strings"

	"github.com/google/uuid"
)

// Asset caps: at most maxAssets entries per blueprint, at most
// sourcesPerAsset bank suggestions per entry.
const (
	maxAssets       = 8
	sourcesPerAsset = 3
)

// AssetLookup is the external asset-bank collaborator. Implementations must
// be deterministic: identical inputs return identical source lists, which
// keeps blueprint generation reproducible. A lookup failure is expressed as
// an empty result, never an error — asset suggestions are best-effort.
type AssetLookup interface {
	Lookup(label, category string, keywords []string, limit int) []AssetSource
}

// assetCandidate is one world-model entity awaiting bank cross-referencing
type assetCandidate struct {
	Name     string
	Category string
}

// SynthesizeAssets builds the suggested-asset list for a world model.
// Candidates are collected in fixed priority order — objectives, enemies,
// companions, then keyword-derived decor — and truncated at maxAssets.
func SynthesizeAssets(model WorldModel, bank AssetLookup) []GeneratedAsset {
	var candidates []assetCandidate

	for _, objective := range model.Objectives {
		candidates = append(candidates, assetCandidate{
			Name:     StripObjectivePrefix(objective),
			Category: CategoryInteractive,
		})
	}
	for _, enemy := range model.Enemies {
		candidates = append(candidates, assetCandidate{Name: enemy, Category: CategoryCharacter})
	}
	for _, companion := range model.Companions {
		candidates = append(candidates, assetCandidate{Name: companion, Category: CategoryCharacter})
	}
	for _, keyword := range model.Keywords {
		candidates = append(candidates, assetCandidate{Name: titleCase(keyword), Category: CategoryDecor})
	}

	if len(candidates) > maxAssets {
		candidates = candidates[:maxAssets]
	}

	assets := make([]GeneratedAsset, 0, len(candidates))
	for _, candidate := range candidates {
		sources := bank.Lookup(candidate.Name, candidate.Category, model.Keywords, sourcesPerAsset)
		assets = append(assets, GeneratedAsset{
			ID:          uuid.New().String(),
			Name:        candidate.Name,
			Category:    candidate.Category,
			Description: describeAsset(candidate, sources),
			Sources:     sources,
		})
	}
	return assets
}

// describeAsset writes the human-readable description, embedding bank
// suggestions when the lookup returned any.
func describeAsset(candidate assetCandidate, sources []AssetSource) string {
	base := candidate.Category + " « " + candidate.Name + " » pour le prototype"
	if len(sources) == 0 {
		return base
	}

	var suggestions []string
	for _, source := range sources {
		suggestions = append(suggestions, source.BankName+" ("+source.License+")")
	}
	return base + " ; pistes : " + strings.Join(suggestions, " / ")
}
