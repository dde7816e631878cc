// Package services defines the contracts between the core ranking engine
// and its callers (the API layer, tests, alternative frontends).
package services

import "github.com/recipegen/recipe-recommender/model"

// RecommendationResult is the outcome of one ranking request: the ranked
// candidates (bounded by the requested k) and a result-quality flag.
type RecommendationResult struct {
	Items []model.ScoredCandidate `json:"items"`

	// LowConfidence is set when no candidate was scored, or the top
	// candidate's ingredient coverage falls below the configured threshold.
	LowConfidence bool `json:"low_confidence"`

	QueryID string `json:"query_id"` // unique UUID for this ranking request
	Took    int64  `json:"took"`     // milliseconds
}

// Recommender ranks candidate recipes against a normalized query token list.
// Implementations must be deterministic and safe for concurrent use: the
// underlying corpus and configuration are read-only after startup.
type Recommender interface {
	// Rank scores the corpus against the query tokens and returns at most
	// max(1, k) candidates in descending combined-score order. An empty
	// query or an empty corpus is valid and never an error.
	Rank(queryTokens []string, k int) RecommendationResult
}

// CorpusReader exposes the read-only corpus views the API layer needs.
type CorpusReader interface {
	Len() int
	ByID(id int) (model.RecipeRecord, bool)
}
