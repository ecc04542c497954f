package validation

import (
	"fmt"
	"regexp"
)

// Brief field limits. The description is the primary derivation signal and
// may be long; title/theme are display strings.
const (
	maxTitleLength       = 200
	maxThemeLength       = 200
	maxDescriptionLength = 4000
	maxReferences        = 10
	maxInstructionLength = 2000
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// gateway categories accepted by the generation endpoint
var validCategories = map[string]bool{
	"website": true,
	"app":     true,
	"image":   true,
	"music":   true,
	"agent":   true,
}

// ValidateBlueprintID validates blueprint ID format
func ValidateBlueprintID(id string) error {
	if len(id) == 0 || len(id) > 64 {
		return fmt.Errorf("blueprint ID must be 1-64 characters")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("blueprint ID can only contain alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// ValidateBrief validates brief field lengths. Empty fields are legal: the
// interpreter absorbs them with fallbacks.
func ValidateBrief(title, theme, description string, references []string) error {
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if len(theme) > maxThemeLength {
		return fmt.Errorf("theme must be at most %d characters", maxThemeLength)
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if len(references) > maxReferences {
		return fmt.Errorf("at most %d references allowed", maxReferences)
	}
	return nil
}

// ValidateInstruction validates a refinement instruction
func ValidateInstruction(instruction string) error {
	if len(instruction) == 0 {
		return fmt.Errorf("instruction must not be empty")
	}
	if len(instruction) > maxInstructionLength {
		return fmt.Errorf("instruction must be at most %d characters", maxInstructionLength)
	}
	return nil
}

// ValidateCategory validates a gateway generation category
func ValidateCategory(category string) error {
	if !validCategories[category] {
		return fmt.Errorf("unknown category: %s", category)
	}
	return nil
}
