// Package corpus loads the processed recipe corpus at startup.
package corpus

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	apperrors "github.com/recipegen/recipe-recommender/internal/errors"
	"github.com/recipegen/recipe-recommender/internal/persistence"
	"github.com/recipegen/recipe-recommender/store"
)

// Load reads the gob corpus file produced by the ETL and returns the
// populated recipe store. A missing file yields ErrCorpusNotFound so the
// caller can point the operator at the ETL.
func Load(path string, logger *zap.Logger) (*store.RecipeStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var recipeStore store.RecipeStore
	if err := persistence.LoadGob(path, &recipeStore); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewCorpusNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to load corpus from %s: %w", path, err)
	}

	logger.Info("corpus loaded",
		zap.String("path", path),
		zap.Int("rows", recipeStore.Len()),
	)
	return &recipeStore, nil
}
