package blueprint

import (
	"strings"
	"unicode"
)

// lowerFirst downcases the first rune so a sentence can be embedded mid-phrase
func lowerFirst(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// preselectedAssets is how many asset ids are pre-checked for the UI
const preselectedAssets = 3

// fallbackBankNames appear in the assistant message when no bank suggestion
// was found at all.
var fallbackBankNames = []string{"Kenney", "OpenGameArt"}

// Assemble merges the world model, the synthesized assets and the emitted
// game code into the final immutable blueprint. instruction is the refinement
// request being applied, empty for the initial generation.
func Assemble(model WorldModel, assets []GeneratedAsset, code, instruction string) GameBlueprint {
	pitch := model.Description
	if pitch == "" {
		pitch = defaultPitch
	}

	selected := make([]string, 0, preselectedAssets)
	for _, asset := range assets {
		if len(selected) == preselectedAssets {
			break
		}
		selected = append(selected, asset.ID)
	}

	return GameBlueprint{
		Summary: Summary{
			Title:         model.Title,
			Theme:         model.Theme,
			ElevatorPitch: pitch,
			Objectives:    append([]string(nil), model.Objectives...),
			Environment:   model.Environment,
		},
		Updates:          buildUpdates(model, assets),
		Code:             code,
		Assets:           assets,
		SelectedAssetIDs: selected,
		AssistantMessage: buildAssistantMessage(model, assets, instruction),
	}
}

// buildUpdates produces the derivation log, most relevant entries first
func buildUpdates(model WorldModel, assets []GeneratedAsset) []string {
	var updates []string

	for _, highlight := range bankHighlights(assets, 2) {
		updates = append(updates, "Banque d'assets : "+highlight)
	}

	updates = append(updates, "Environnement : "+model.Environment)
	if len(model.Enemies) > 0 {
		updates = append(updates, "Menaces : "+strings.Join(model.Enemies, ", "))
	}
	if len(model.Companions) > 0 {
		updates = append(updates, "Alliés : "+strings.Join(model.Companions, ", "))
	}
	updates = append(updates,
		"Objectifs : "+strings.Join(model.Objectives, " · "),
		"Palette : "+strings.Join(model.Palette, " → "),
		"Identité : "+model.Title+" — "+model.Theme,
	)
	return updates
}

// bankHighlights collects up to limit distinct bank-name/license mentions
// from the synthesized assets, in generation order.
func bankHighlights(assets []GeneratedAsset, limit int) []string {
	seen := make(map[string]bool)
	var highlights []string

	for _, asset := range assets {
		for _, source := range asset.Sources {
			if seen[source.BankID] {
				continue
			}
			seen[source.BankID] = true
			highlights = append(highlights, source.BankName+" ("+source.License+")")
			if len(highlights) == limit {
				return highlights
			}
		}
	}
	return highlights
}

// buildAssistantMessage writes the chat-facing summary paragraph
func buildAssistantMessage(model WorldModel, assets []GeneratedAsset, instruction string) string {
	applied := "Premier prototype généré"
	if instruction != "" {
		applied = "Instruction appliquée : « " + instruction + " »"
	}

	var objectives []string
	for _, objective := range model.Objectives {
		objectives = append(objectives, StripObjectivePrefix(objective))
	}

	highlights := bankHighlights(assets, 2)
	if len(highlights) == 0 {
		highlights = fallbackBankNames
	}

	var b strings.Builder
	b.WriteString(applied)
	b.WriteString(". « ")
	b.WriteString(model.Title)
	b.WriteString(" » prend place dans ")
	b.WriteString(lowerFirst(model.Environment))
	b.WriteString(". Objectifs : ")
	b.WriteString(strings.Join(objectives, " ; "))
	b.WriteString(". Palette retenue : ")
	b.WriteString(strings.Join(model.Palette, " → "))
	b.WriteString(". Pour les assets, regardez du côté de ")
	b.WriteString(strings.Join(highlights, " et "))
	b.WriteString(". Testez le prototype dans l'aperçu puis envoyez une nouvelle instruction pour itérer.")
	return b.String()
}
