package assetbank

import "github.com/atelier-ia/server/internal/blueprint"

// defaultBanks is the shipped catalog. Order matters: Lookup walks banks
// top to bottom, so the most permissively licensed banks come first.
var defaultBanks = []Bank{
	{
		ID:          "kenney",
		Name:        "Kenney",
		SearchURL:   "https://kenney.nl/assets?q={query}",
		License:     "CC0",
		Description: "Packs 2D/3D prêts à l'emploi, style cohérent",
		Categories: []string{
			blueprint.CategoryDecor, blueprint.CategoryCharacter,
			blueprint.CategoryInteractive, blueprint.CategoryInterface,
			blueprint.CategoryGeneral,
		},
		Tags: []string{"pixel", "plateforme", "espace", "vaisseau", "donjon", "course"},
	},
	{
		ID:          "opengameart",
		Name:        "OpenGameArt",
		SearchURL:   "https://opengameart.org/art-search?keys={query}",
		License:     "CC0 / CC-BY",
		Description: "Bibliothèque communautaire de sprites, tilesets et musiques",
		Categories: []string{
			blueprint.CategoryDecor, blueprint.CategoryCharacter,
			blueprint.CategoryTexture, blueprint.CategoryAudio,
			blueprint.CategoryGeneral,
		},
		Tags: []string{"sprite", "tileset", "fantasy", "monstre", "foret", "donjon"},
	},
	{
		ID:          "itchio",
		Name:        "itch.io",
		SearchURL:   "https://itch.io/game-assets/free?q={query}",
		License:     "Variable selon le pack",
		Description: "Assets indés gratuits et payants, tous genres",
		Categories: []string{
			blueprint.CategoryDecor, blueprint.CategoryCharacter,
			blueprint.CategoryInteractive, blueprint.CategoryGeneral,
		},
		Tags: []string{"cyber", "neon", "horreur", "retro", "aventure"},
	},
	{
		ID:          "freesound",
		Name:        "Freesound",
		SearchURL:   "https://freesound.org/search/?q={query}",
		License:     "CC0 / CC-BY",
		Description: "Effets sonores et ambiances enregistrés",
		Categories:  []string{blueprint.CategoryAudio},
		Match:       `category == "Audio" or "ambiance" in keywords`,
	},
	{
		ID:          "polyhaven",
		Name:        "Poly Haven",
		SearchURL:   "https://polyhaven.com/all?search={query}",
		License:     "CC0",
		Description: "Textures et HDRI haute résolution",
		Categories:  []string{blueprint.CategoryTexture},
		Tags:        []string{"texture", "terrain", "roche", "sable", "glace"},
	},
	{
		ID:          "craftpix",
		Name:        "CraftPix",
		SearchURL:   "https://craftpix.net/?s={query}",
		License:     "Commerciale + freebies",
		Description: "Kits 2D thématiques (personnages, décors, interfaces)",
		Categories: []string{
			blueprint.CategoryCharacter, blueprint.CategoryDecor,
			blueprint.CategoryInterface,
		},
		Tags: []string{"plateforme", "rpg", "zombie", "pirate"},
	},
}

// DefaultCatalog returns the shipped bank catalog. The bank data is
// static and its match conditions are known-valid, so compilation
// failures are programming errors.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultBanks)
	if err != nil {
		panic(err)
	}
	return catalog
}
