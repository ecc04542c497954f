package blueprint

// Asset categories used by the synthesizer and the asset bank catalog
const (
	CategoryDecor       = "Décor"
	CategoryCharacter   = "Personnage"
	CategoryInteractive = "Objet interactif"
	CategoryTexture     = "Texture"
	CategoryInterface   = "Interface"
	CategoryAudio       = "Audio"
	CategoryGeneral     = "Généraliste"
)

// GameBrief is the raw user-submitted input to blueprint derivation
type GameBrief struct {
	Title       string   `json:"title"`
	Theme       string   `json:"theme"`
	Description string   `json:"description"`
	References  []string `json:"references"`
}

// WorldModel is the structured game concept derived from a brief
type WorldModel struct {
	Title        string   `json:"title"`
	Theme        string   `json:"theme"`
	Description  string   `json:"description"`
	Environment  string   `json:"environment"`
	Palette      []string `json:"palette"` // always exactly 3 hex colors
	Objectives   []string `json:"objectives"`
	Enemies      []string `json:"enemies"`
	Companions   []string `json:"companions"`
	Collectibles []string `json:"collectibles"` // capped at 6, sizes the in-game pickup set 1:1
	Keywords     []string `json:"keywords"`
}

// AssetSource is a single downloadable-asset suggestion from the asset bank
type AssetSource struct {
	BankID      string `json:"bank_id"`
	BankName    string `json:"bank_name"`
	URL         string `json:"url"`
	License     string `json:"license"`
	Description string `json:"description"`
}

// GeneratedAsset is one suggested asset entry in a blueprint
type GeneratedAsset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Sources     []AssetSource `json:"sources"`
}

// Summary is the human-facing recap of a blueprint
type Summary struct {
	Title         string   `json:"title"`
	Theme         string   `json:"theme"`
	ElevatorPitch string   `json:"elevator_pitch"`
	Objectives    []string `json:"objectives"`
	Environment   string   `json:"environment"`
}

// GameBlueprint is the final assembled output of the derivation pipeline
type GameBlueprint struct {
	ID               string           `json:"id"`
	Summary          Summary          `json:"summary"`
	Updates          []string         `json:"updates"`
	Code             string           `json:"code"`
	Assets           []GeneratedAsset `json:"assets"`
	SelectedAssetIDs []string         `json:"selected_asset_ids"`
	AssistantMessage string           `json:"assistant_message"`
}

// SceneConfig is the world-model subset embedded into the emitted game
type SceneConfig struct {
	Title        string   `json:"title"`
	Theme        string   `json:"theme"`
	Environment  string   `json:"environment"`
	Objectives   []string `json:"objectives"`
	Enemies      []string `json:"enemies"`
	Collectibles []string `json:"collectibles"`
	Palette      []string `json:"palette"`
	Keywords     []string `json:"keywords"`
	Seed         int64    `json:"seed"`
}
