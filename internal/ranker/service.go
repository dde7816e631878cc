// Package ranker implements the hybrid scoring engine: TF-IDF candidate
// generation over the whole corpus followed by exact, pantry-aware
// set-overlap re-ranking of the top candidates.
package ranker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipegen/recipe-recommender/config"
	"github.com/recipegen/recipe-recommender/internal/similarity"
	"github.com/recipegen/recipe-recommender/model"
	"github.com/recipegen/recipe-recommender/services"
	"github.com/recipegen/recipe-recommender/store"
)

// Service implements services.Recommender over an immutable corpus store and
// similarity index. It holds no request-scoped mutable state, so a single
// instance serves concurrent requests without locking.
type Service struct {
	recipeStore *store.RecipeStore
	simIndex    similarity.Index
	settings    *config.Settings
	pantry      map[string]struct{}
	logger      *zap.Logger
}

// NewService creates a new ranking Service.
func NewService(recipeStore *store.RecipeStore, simIndex similarity.Index, settings *config.Settings, logger *zap.Logger) (*Service, error) {
	if recipeStore == nil {
		return nil, fmt.Errorf("recipe store cannot be nil")
	}
	if simIndex == nil {
		return nil, fmt.Errorf("similarity index cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		recipeStore: recipeStore,
		simIndex:    simIndex,
		settings:    settings,
		pantry:      settings.PantrySet(),
		logger:      logger,
	}, nil
}

// scoredCandidate carries one candidate through re-ranking.
type scoredCandidate struct {
	corpusIdx int
	score     float64
}

// Rank scores every corpus record against the query tokens, re-ranks the
// top candidates with the pantry-aware overlap signal, and returns at most
// max(1, k) results.
//
// Tie-break: candidates are sorted by combined score descending; equal
// scores keep base-similarity-descending order, and equal similarities fall
// back to ascending corpus index. The sort is fully deterministic.
func (s *Service) Rank(queryTokens []string, k int) services.RecommendationResult {
	startTime := time.Now()

	queryText := strings.Join(queryTokens, " ")
	sims := s.simIndex.Scores(queryText)
	n := len(sims)

	queryFiltered := s.excludePantry(queryTokens)

	// Candidate generation: top TopKCand by similarity, clamped to the
	// corpus size. This bounds the cost of the exact re-ranking below.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})
	numCand := s.settings.TopKCand
	if numCand > n {
		numCand = n
	}

	scored := make([]scoredCandidate, 0, numCand)
	for _, idx := range order[:numCand] {
		candFiltered := s.excludePantrySet(s.recipeStore.TokenSet(idx))

		score := s.settings.WTFIDF*sims[idx] + s.settings.WJaccard*jaccard(queryFiltered, candFiltered)

		overlap := intersectionSize(queryFiltered, candFiltered)
		if overlap < s.settings.MinOverlap {
			score *= s.settings.PenaltyLowOverlap
		}

		scored = append(scored, scoredCandidate{corpusIdx: idx, score: score})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if k < 1 {
		k = 1
	}
	if k > len(scored) {
		k = len(scored)
	}

	items := make([]model.ScoredCandidate, 0, k)
	for _, cand := range scored[:k] {
		items = append(items, s.renderCandidate(cand, queryFiltered))
	}

	lowConfidence := len(scored) == 0 ||
		(len(items) > 0 && items[0].Coverage < s.settings.CoverageLow)

	result := services.RecommendationResult{
		Items:         items,
		LowConfidence: lowConfidence,
		QueryID:       uuid.New().String(),
		Took:          time.Since(startTime).Milliseconds(),
	}

	s.logger.Debug("ranked query",
		zap.Int("query_tokens", len(queryTokens)),
		zap.Int("candidates", len(scored)),
		zap.Int("returned", len(items)),
		zap.Bool("low_confidence", lowConfidence),
		zap.String("query_id", result.QueryID),
	)
	return result
}

// renderCandidate fills the response fields for one surviving candidate:
// sorted matched/missing token sets and the final coverage. Coverage is 1.0
// by convention when the pantry-excluded query set is empty; there is
// nothing non-pantry to fail to match.
func (s *Service) renderCandidate(cand scoredCandidate, queryFiltered map[string]struct{}) model.ScoredCandidate {
	record := s.recipeStore.Record(cand.corpusIdx)
	candFiltered := s.excludePantrySet(s.recipeStore.TokenSet(cand.corpusIdx))

	matched := make([]string, 0)
	missing := make([]string, 0)
	for tok := range queryFiltered {
		if _, ok := candFiltered[tok]; ok {
			matched = append(matched, tok)
		} else {
			missing = append(missing, tok)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	coverage := 1.0
	if len(queryFiltered) > 0 {
		coverage = float64(len(matched)) / float64(len(queryFiltered))
	}

	return model.ScoredCandidate{
		ID:           record.ID,
		Title:        record.Title,
		Ingredients:  record.IngredientTokens,
		Instructions: record.Instructions,
		Score:        cand.score,
		Matched:      matched,
		Missing:      missing,
		Coverage:     coverage,
	}
}

// excludePantry returns the set of tokens not in the pantry, dropping
// empties.
func (s *Service) excludePantry(tokens []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, staple := s.pantry[tok]; staple {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// excludePantrySet is excludePantry over a precomputed token set.
func (s *Service) excludePantrySet(tokens map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for tok := range tokens {
		if tok == "" {
			continue
		}
		if _, staple := s.pantry[tok]; staple {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// jaccard computes |A∩B| / |A∪B| over pantry-excluded token sets, defined
// as 0.0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			count++
		}
	}
	return count
}
