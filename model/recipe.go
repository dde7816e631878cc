// Package model defines the data types shared across the recommender:
// corpus records and per-query scoring results.
package model

import "strings"

// searchTextInstructionsCap bounds the instructions excerpt included in the
// search text.
const searchTextInstructionsCap = 1000

// RecipeRecord is one recipe in the loaded corpus. Records are immutable
// once loaded and owned by the corpus store for the process lifetime.
type RecipeRecord struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	IngredientTokens []string `json:"ingredients"` // canonical tokens, first-seen order, no duplicates
	Instructions     string   `json:"instructions"`
	SearchText       string   `json:"search_text"` // title + comma-joined tokens + instructions excerpt
}

// DerivedSearchText builds the similarity-index input for the record: the
// title, the comma-joined canonical tokens, and a capped instructions
// excerpt. The ETL stores this at cleaning time; the corpus store derives
// it for records persisted without one.
func (r RecipeRecord) DerivedSearchText() string {
	excerpt := r.Instructions
	if runes := []rune(excerpt); len(runes) > searchTextInstructionsCap {
		excerpt = string(runes[:searchTextInstructionsCap])
	}
	return r.Title + " " + strings.Join(r.IngredientTokens, ",") + " " + excerpt
}

// ScoredCandidate is one ranked recipe in a recommendation response.
// Matched and Missing are lexicographically sorted sets of non-pantry
// query tokens; Coverage is the fraction of non-pantry query tokens found
// in the recipe's ingredient set.
type ScoredCandidate struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Score        float64  `json:"score"`
	Matched      []string `json:"matched"`
	Missing      []string `json:"missing"`
	Coverage     float64  `json:"coverage"`
}
