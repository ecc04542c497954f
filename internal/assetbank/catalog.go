package assetbank

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/atelier-ia/server/internal/blueprint"
)

// Bank describes one external asset catalog and how to build search links
// into it. SearchURL contains a {query} placeholder that receives the
// URL-escaped query string.
type Bank struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SearchURL   string   `json:"search_url"`
	License     string   `json:"license"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	Match       string   `json:"match,omitempty"` // optional expr condition over {label, category, keywords}

	compiledMatch *vm.Program
}

// Catalog is an immutable, ordered set of banks. Lookup walks banks in
// catalog order, which keeps results stable for identical inputs.
type Catalog struct {
	banks []Bank
}

// NewCatalog builds a catalog and pre-compiles bank match conditions
func NewCatalog(banks []Bank) (*Catalog, error) {
	owned := make([]Bank, len(banks))
	copy(owned, banks)

	for i := range owned {
		if owned[i].Match == "" {
			continue
		}
		program, err := expr.Compile(owned[i].Match)
		if err != nil {
			return nil, fmt.Errorf("invalid match condition for bank %s: %w", owned[i].ID, err)
		}
		owned[i].compiledMatch = program
	}

	return &Catalog{banks: owned}, nil
}

// Lookup returns up to limit asset sources for a label/category/keyword
// query. A bank is eligible when the category belongs to its declared set,
// when its tags overlap the keywords, or when its match condition holds.
// Generalist banks serve as the fallback when nothing else is eligible.
func (c *Catalog) Lookup(label, category string, keywords []string, limit int) []blueprint.AssetSource {
	if limit <= 0 {
		return nil
	}

	query := buildQuery(label, keywords)

	var sources []blueprint.AssetSource
	for _, bank := range c.banks {
		if len(sources) >= limit {
			break
		}
		if bank.eligible(label, category, keywords) {
			sources = append(sources, bank.source(label, query))
		}
	}

	if len(sources) == 0 {
		for _, bank := range c.banks {
			if len(sources) >= limit {
				break
			}
			if bank.hasCategory(blueprint.CategoryGeneral) {
				sources = append(sources, bank.source(label, query))
			}
		}
	}

	return sources
}

// Banks returns a copy of the catalog's bank list
func (c *Catalog) Banks() []Bank {
	banks := make([]Bank, len(c.banks))
	copy(banks, c.banks)
	return banks
}

func (b *Bank) hasCategory(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (b *Bank) tagOverlap(keywords []string) bool {
	for _, tag := range b.Tags {
		folded := blueprint.Fold(tag)
		for _, keyword := range keywords {
			if strings.Contains(keyword, folded) || strings.Contains(folded, keyword) {
				return true
			}
		}
	}
	return false
}

func (b *Bank) eligible(label, category string, keywords []string) bool {
	if b.hasCategory(category) {
		return true
	}
	if b.tagOverlap(keywords) {
		return true
	}
	if b.compiledMatch != nil {
		env := map[string]interface{}{
			"label":    blueprint.Fold(label),
			"category": category,
			"keywords": keywords,
		}
		if result, err := expr.Run(b.compiledMatch, env); err == nil {
			if matched, ok := result.(bool); ok && matched {
				return true
			}
		}
	}
	return false
}

// source builds the AssetSource record for a query against this bank
func (b *Bank) source(label, query string) blueprint.AssetSource {
	return blueprint.AssetSource{
		BankID:      b.ID,
		BankName:    b.Name,
		URL:         strings.Replace(b.SearchURL, "{query}", url.QueryEscape(query), 1),
		License:     b.License,
		Description: b.Description + " — recherche « " + label + " »",
	}
}

// buildQuery combines the label with the first keyword not already in it
func buildQuery(label string, keywords []string) string {
	query := blueprint.Fold(label)
	for _, keyword := range keywords {
		if !strings.Contains(query, keyword) {
			query += " " + keyword
			break
		}
	}
	return strings.TrimSpace(query)
}
