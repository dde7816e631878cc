// Package config provides the recommender's tunable settings: ranking
// weights, candidate and overlap thresholds, and the pantry token set.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaultPantry lists the staple tokens excluded from overlap and coverage
// scoring. Their presence or absence is uninformative for recipe matching.
var defaultPantry = []string{
	"salt", "kosher_salt", "coarse_kosher_salt",
	"pepper", "black_pepper",
	"water", "oil", "olive_oil", "vegetable_oil", "canola_oil",
	"sugar", "sea_salt",
}

// Settings contains all configuration for the hybrid ranker and corpus
// loading. All values are read-only after startup; the ranker receives the
// struct explicitly rather than reading ambient state.
type Settings struct {
	// TopKCand bounds the candidate-generation stage: the number of
	// documents kept by similarity score before exact re-ranking.
	TopKCand int `mapstructure:"topk_cand"`

	// WTFIDF and WJaccard weight the text-similarity and set-overlap
	// signals in the combined score.
	WTFIDF   float64 `mapstructure:"w_tfidf"`
	WJaccard float64 `mapstructure:"w_jaccard"`

	// CoverageLow is the coverage threshold below which the top result
	// flags the whole response as low confidence.
	CoverageLow float64 `mapstructure:"coverage_low"`

	// MinOverlap is the minimum non-pantry ingredient overlap; candidates
	// below it have their score multiplied by PenaltyLowOverlap.
	MinOverlap        int     `mapstructure:"min_overlap"`
	PenaltyLowOverlap float64 `mapstructure:"penalty_low_overlap"`

	// Pantry is the set of canonical tokens excluded from overlap and
	// coverage computations.
	Pantry []string `mapstructure:"pantry"`

	// DataPath is the processed corpus file produced by the ETL.
	DataPath string `mapstructure:"data_processed"`
}

// ApplyDefaults fills zero values with the documented defaults.
func (s *Settings) ApplyDefaults() {
	if s.TopKCand == 0 {
		s.TopKCand = 50
	}
	if s.WTFIDF == 0 {
		s.WTFIDF = 0.3
	}
	if s.WJaccard == 0 {
		s.WJaccard = 0.7
	}
	if s.CoverageLow == 0 {
		s.CoverageLow = 0.5
	}
	if s.MinOverlap == 0 {
		s.MinOverlap = 2
	}
	if s.PenaltyLowOverlap == 0 {
		s.PenaltyLowOverlap = 0.6
	}
	if s.Pantry == nil {
		s.Pantry = append([]string(nil), defaultPantry...)
	}
	if s.DataPath == "" {
		s.DataPath = "data/processed/recipes.gob"
	}
}

// Validate checks the settings for invalid values and returns a list of
// problems. An empty list means the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	if s.TopKCand < 1 {
		problems = append(problems, fmt.Sprintf("topk_cand must be positive, got %d", s.TopKCand))
	}
	if s.WTFIDF < 0 {
		problems = append(problems, fmt.Sprintf("w_tfidf must not be negative, got %g", s.WTFIDF))
	}
	if s.WJaccard < 0 {
		problems = append(problems, fmt.Sprintf("w_jaccard must not be negative, got %g", s.WJaccard))
	}
	if s.CoverageLow < 0 || s.CoverageLow > 1 {
		problems = append(problems, fmt.Sprintf("coverage_low must be in [0,1], got %g", s.CoverageLow))
	}
	if s.MinOverlap < 0 {
		problems = append(problems, fmt.Sprintf("min_overlap must not be negative, got %d", s.MinOverlap))
	}
	if s.PenaltyLowOverlap < 0 || s.PenaltyLowOverlap > 1 {
		problems = append(problems, fmt.Sprintf("penalty_low_overlap must be in [0,1], got %g", s.PenaltyLowOverlap))
	}
	for _, tok := range s.Pantry {
		if strings.TrimSpace(tok) == "" {
			problems = append(problems, "pantry tokens cannot be empty or whitespace-only")
			break
		}
	}

	return problems
}

// PantrySet returns the pantry as a lookup set.
func (s *Settings) PantrySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Pantry))
	for _, tok := range s.Pantry {
		set[tok] = struct{}{}
	}
	return set
}

// Load reads settings from the environment (a .env file is honored when
// present) and validates. Env names match the original deployment:
// TOPK_CAND, W_TFIDF, W_JACCARD, COVERAGE_LOW, MIN_OVERLAP,
// PENALTY_LOW_OVERLAP, PANTRY (comma-separated), DATA_PROCESSED.
//
// Defaults are registered with viper rather than patched in afterwards so
// that an explicit zero in the environment (W_TFIDF=0, MIN_OVERLAP=0,
// PENALTY_LOW_OVERLAP=0 are all legal tunings) is kept as a zero.
func Load() (*Settings, error) {
	// Missing .env files are fine; env vars still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("TOPK_CAND", 50)
	v.SetDefault("W_TFIDF", 0.3)
	v.SetDefault("W_JACCARD", 0.7)
	v.SetDefault("COVERAGE_LOW", 0.5)
	v.SetDefault("MIN_OVERLAP", 2)
	v.SetDefault("PENALTY_LOW_OVERLAP", 0.6)
	v.SetDefault("PANTRY", strings.Join(defaultPantry, ","))
	v.SetDefault("DATA_PROCESSED", "data/processed/recipes.gob")
	v.AutomaticEnv()

	settings := &Settings{
		TopKCand:          v.GetInt("TOPK_CAND"),
		WTFIDF:            v.GetFloat64("W_TFIDF"),
		WJaccard:          v.GetFloat64("W_JACCARD"),
		CoverageLow:       v.GetFloat64("COVERAGE_LOW"),
		MinOverlap:        v.GetInt("MIN_OVERLAP"),
		PenaltyLowOverlap: v.GetFloat64("PENALTY_LOW_OVERLAP"),
		Pantry:            splitPantry(v.GetString("PANTRY")),
		DataPath:          v.GetString("DATA_PROCESSED"),
	}

	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}

// splitPantry parses the comma-separated PANTRY value, dropping whitespace
// within and around tokens as the original deployment did.
func splitPantry(raw string) []string {
	cleaned := strings.ReplaceAll(raw, " ", "")
	parts := strings.Split(cleaned, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
