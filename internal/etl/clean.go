// Package etl turns a raw recipes CSV into the processed corpus the server
// loads: ingredient phrases are normalized into canonical tokens, unusable
// rows are dropped, and the search text is derived.
package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/recipegen/recipe-recommender/internal/tokenizer"
	"github.com/recipegen/recipe-recommender/model"
	"github.com/recipegen/recipe-recommender/store"
)

// Stats reports what the cleaning pass did.
type Stats struct {
	RowsIn         int     `json:"rows_in"`
	RowsOut        int     `json:"rows_out"`
	Dropped        int     `json:"dropped"`
	AvgIngredients float64 `json:"avg_ingredients"`
}

// Clean reads a raw recipes CSV and returns the normalized, filtered corpus
// records with derived search text, plus cleaning statistics.
//
// Required columns (case-insensitive): title, ingredients, instructions.
// The id column is optional ("id" preferred, "unnamed: 0" accepted); rows
// without a parseable id default to their position. Rows with fewer than 2
// ingredient tokens or empty instructions are dropped: the ranker depends
// on this token contract (same normalizer, deterministic output).
func Clean(r io.Reader) ([]model.RecipeRecord, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"title", "ingredients", "instructions"} {
		if _, ok := cols[required]; !ok {
			return nil, Stats{}, fmt.Errorf("missing required column %q (present: %v)", required, header)
		}
	}
	idCol, hasID := cols["id"]
	if !hasID {
		idCol, hasID = cols["unnamed: 0"]
	}

	var stats Stats
	records := make([]model.RecipeRecord, 0)
	totalTokens := 0
	for rowIdx := 0; ; rowIdx++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Stats{}, fmt.Errorf("failed to read CSV row %d: %w", rowIdx, err)
		}
		stats.RowsIn++

		id := rowIdx
		if hasID {
			if parsed, err := strconv.Atoi(strings.TrimSpace(field(row, idCol))); err == nil {
				id = parsed
			}
		}

		tokens := store.CoerceIngredients(field(row, cols["ingredients"]))
		instructions := strings.TrimSpace(field(row, cols["instructions"]))
		if len(tokens) < 2 || instructions == "" {
			continue
		}

		rec := model.RecipeRecord{
			ID:               id,
			Title:            tokenizer.NormalizeTitle(field(row, cols["title"])),
			IngredientTokens: tokens,
			Instructions:     instructions,
		}
		rec.SearchText = rec.DerivedSearchText()
		records = append(records, rec)
		totalTokens += len(tokens)
	}

	stats.RowsOut = len(records)
	stats.Dropped = stats.RowsIn - stats.RowsOut
	if stats.RowsOut > 0 {
		stats.AvgIngredients = float64(totalTokens) / float64(stats.RowsOut)
	}
	return records, stats, nil
}

// field returns the row value at the given column, tolerating short rows.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
