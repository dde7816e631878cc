// Package errors defines the recommender's sentinel and typed errors.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrRecipeNotFound is returned when a recipe ID is not in the corpus.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrCorpusNotFound is returned when the processed corpus file does
	// not exist (the ETL has not been run).
	ErrCorpusNotFound = errors.New("corpus file not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// RecipeNotFoundError represents a recipe not found error with context.
type RecipeNotFoundError struct {
	RecipeID int
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe with ID %d not found", e.RecipeID)
}

func (e *RecipeNotFoundError) Is(target error) bool {
	return target == ErrRecipeNotFound
}

// NewRecipeNotFoundError creates a new RecipeNotFoundError.
func NewRecipeNotFoundError(recipeID int) *RecipeNotFoundError {
	return &RecipeNotFoundError{RecipeID: recipeID}
}

// CorpusNotFoundError represents a missing corpus file with context.
type CorpusNotFoundError struct {
	Path string
}

func (e *CorpusNotFoundError) Error() string {
	return fmt.Sprintf("corpus file '%s' not found (run the ETL first)", e.Path)
}

func (e *CorpusNotFoundError) Is(target error) bool {
	return target == ErrCorpusNotFound
}

// NewCorpusNotFoundError creates a new CorpusNotFoundError.
func NewCorpusNotFoundError(path string) *CorpusNotFoundError {
	return &CorpusNotFoundError{Path: path}
}
