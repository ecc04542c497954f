package blueprint

import "github.com/google/uuid"

// Generator runs the full brief→blueprint derivation pipeline. It holds no
// mutable state: every call derives a fresh, independent blueprint, so
// concurrent submissions cannot interfere.
type Generator struct {
	bank AssetLookup
}

// NewGenerator creates a generator backed by the given asset-bank catalog
func NewGenerator(bank AssetLookup) *Generator {
	return &Generator{bank: bank}
}

// Generate derives a complete blueprint from a brief. instruction is a
// refinement request folded into the derivation signal (empty for the
// initial generation); seed drives the emitted game's layout.
func (g *Generator) Generate(brief GameBrief, instruction string, seed int64) GameBlueprint {
	if instruction != "" {
		brief.Description = joinSignal(brief.Description, instruction)
	}

	model := Interpret(brief)
	assets := SynthesizeAssets(model, g.bank)
	code := EmitGameCode(SceneConfig{
		Title:        model.Title,
		Theme:        model.Theme,
		Environment:  model.Environment,
		Objectives:   model.Objectives,
		Enemies:      model.Enemies,
		Collectibles: model.Collectibles,
		Palette:      model.Palette,
		Keywords:     model.Keywords,
		Seed:         seed,
	})

	result := Assemble(model, assets, code, instruction)
	result.ID = uuid.New().String()
	return result
}

// joinSignal appends a refinement instruction to the description so the
// interpreter picks up its keywords.
func joinSignal(description, instruction string) string {
	if description == "" {
		return instruction
	}
	return description + ". " + instruction
}
