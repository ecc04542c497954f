package blueprint

import (
	"reflect"
	"strings"
	"testing"
)

// TestInterpretEmptyBrief tests that an entirely empty brief still yields a
// complete model from fallbacks
func TestInterpretEmptyBrief(t *testing.T) {
	model := Interpret(GameBrief{})

	if model.Title != "Prototype IA" {
		t.Errorf("Expected fallback title, got '%s'", model.Title)
	}
	if model.Theme != "Univers généré" {
		t.Errorf("Expected fallback theme, got '%s'", model.Theme)
	}
	if model.Environment == "" {
		t.Error("Expected non-empty environment")
	}
	if len(model.Palette) != 3 {
		t.Fatalf("Expected 3 palette colors, got %d", len(model.Palette))
	}
	if !reflect.DeepEqual(model.Palette, []string{"#0b1f3a", "#3b5bdb", "#9ad0ff"}) {
		t.Errorf("Expected default palette, got %v", model.Palette)
	}
	if len(model.Objectives) < 1 || len(model.Objectives) > 3 {
		t.Errorf("Expected 1-3 objectives, got %d", len(model.Objectives))
	}
	if len(model.Collectibles) < 1 {
		t.Error("Expected at least one collectible")
	}
	for _, objective := range model.Objectives {
		if objective == "" {
			t.Error("Expected non-empty objective")
		}
	}
}

// TestInterpretDesertRules tests environment and palette resolution for a
// desert brief
func TestInterpretDesertRules(t *testing.T) {
	model := Interpret(GameBrief{Description: "Une bataille dans un désert brûlant"})

	if !strings.Contains(model.Environment, "Désert") {
		t.Errorf("Expected desert environment, got '%s'", model.Environment)
	}

	expected := []string{"#3c1f03", "#c7721e", "#fbd88d"}
	if !reflect.DeepEqual(model.Palette, expected) {
		t.Errorf("Expected desert palette %v, got %v", expected, model.Palette)
	}
}

// TestInterpretForestRules tests the forest palette triple
func TestInterpretForestRules(t *testing.T) {
	model := Interpret(GameBrief{Description: "Une forêt sombre et mystique"})

	if !strings.Contains(model.Environment, "Forêt") {
		t.Errorf("Expected forest environment, got '%s'", model.Environment)
	}

	expected := []string{"#0f2b1d", "#1f6f43", "#a3ffcf"}
	if !reflect.DeepEqual(model.Palette, expected) {
		t.Errorf("Expected forest palette %v, got %v", expected, model.Palette)
	}
}

// TestInterpretObjectives tests positional labeling of description clauses
func TestInterpretObjectives(t *testing.T) {
	model := Interpret(GameBrief{
		Description: "Explorez les ruines. Trouvez le trésor caché. Fuyez la malédiction. Encore une phrase. Et une autre.",
	})

	expected := []string{
		"Boucle principale : Explorez les ruines",
		"Progression : Trouvez le trésor caché",
		"Ambiance : Fuyez la malédiction",
	}
	if !reflect.DeepEqual(model.Objectives, expected) {
		t.Errorf("Expected objectives %v, got %v", expected, model.Objectives)
	}

	if got := StripObjectivePrefix(model.Objectives[0]); got != "Explorez les ruines" {
		t.Errorf("Expected stripped objective, got '%s'", got)
	}
}

// TestInterpretRosterExtraction tests enemy and companion clause matching
func TestInterpretRosterExtraction(t *testing.T) {
	model := Interpret(GameBrief{
		Description: "Des monstres rôdent dans la brume. Un allié fidèle vous guide.",
	})

	expectedEnemies := []string{"Monstres Rôdent Brume"}
	if !reflect.DeepEqual(model.Enemies, expectedEnemies) {
		t.Errorf("Expected enemies %v, got %v", expectedEnemies, model.Enemies)
	}

	expectedCompanions := []string{"Allié Fidèle Guide"}
	if !reflect.DeepEqual(model.Companions, expectedCompanions) {
		t.Errorf("Expected companions %v, got %v", expectedCompanions, model.Companions)
	}
}

// TestInterpretKeywordRosterFallback tests the keyword-slice roster fallback
// when no clause matches the roster patterns
func TestInterpretKeywordRosterFallback(t *testing.T) {
	model := Interpret(GameBrief{
		Description: "forteresse volante cristaux anciens vestiges oublies legendes perdues",
	})

	expectedEnemies := []string{"Forteresse", "Volante", "Cristaux"}
	if !reflect.DeepEqual(model.Enemies, expectedEnemies) {
		t.Errorf("Expected enemies %v, got %v", expectedEnemies, model.Enemies)
	}

	expectedCompanions := []string{"Anciens", "Vestiges", "Oublies"}
	if !reflect.DeepEqual(model.Companions, expectedCompanions) {
		t.Errorf("Expected companions %v, got %v", expectedCompanions, model.Companions)
	}
}

// TestInterpretCollectiblesCap tests the 6-collectible cap
func TestInterpretCollectiblesCap(t *testing.T) {
	model := Interpret(GameBrief{
		Description: "forteresse volante cristaux anciens vestiges oublies legendes perdues tempetes magnetiques",
	})

	if len(model.Collectibles) > 6 {
		t.Errorf("Expected at most 6 collectibles, got %d", len(model.Collectibles))
	}
	if len(model.Collectibles) == 0 {
		t.Error("Expected at least one collectible")
	}

	seen := make(map[string]bool)
	for _, collectible := range model.Collectibles {
		key := Fold(collectible)
		if seen[key] {
			t.Errorf("Duplicate collectible '%s'", collectible)
		}
		seen[key] = true
	}
}

// TestInterpretTitleFromKeywords tests title and theme synthesis when the
// brief only carries a description
func TestInterpretTitleFromKeywords(t *testing.T) {
	model := Interpret(GameBrief{Description: "forteresse volante cristaux"})

	if model.Title != "Forteresse Volante" {
		t.Errorf("Expected title 'Forteresse Volante', got '%s'", model.Title)
	}
	if model.Theme != "Univers forteresse" {
		t.Errorf("Expected theme 'Univers forteresse', got '%s'", model.Theme)
	}
}

// TestInterpretDeterminism tests that interpretation is a pure function of
// the brief
func TestInterpretDeterminism(t *testing.T) {
	brief := GameBrief{
		Title:       "Les Dunes",
		Theme:       "désert",
		Description: "Une bataille dans un désert brûlant. Des monstres rôdent.",
	}

	first := Interpret(brief)
	second := Interpret(brief)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical models for identical briefs")
	}
}
