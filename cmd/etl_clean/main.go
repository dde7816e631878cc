package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/recipegen/recipe-recommender/internal/etl"
	"github.com/recipegen/recipe-recommender/internal/logging"
	"github.com/recipegen/recipe-recommender/internal/persistence"
	"github.com/recipegen/recipe-recommender/store"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input raw recipes CSV (required)")
		outPath = flag.String("out", "data/processed/recipes.gob", "Output processed corpus file")
	)

	flag.Parse()

	if *inPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s --in raw.csv [--out data/processed/recipes.gob]\n", os.Args[0])
		os.Exit(2)
	}

	logger, err := logging.New("info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	file, err := os.Open(*inPath)
	if err != nil {
		logger.Fatal("failed to open input", zap.String("path", *inPath), zap.Error(err))
	}
	defer func() { _ = file.Close() }()

	records, stats, err := etl.Clean(file)
	if err != nil {
		logger.Fatal("cleaning failed", zap.Error(err))
	}

	recipeStore := store.NewRecipeStore(records)
	if err := persistence.SaveGob(*outPath, recipeStore); err != nil {
		logger.Fatal("failed to write corpus", zap.String("path", *outPath), zap.Error(err))
	}
	logger.Info("corpus written", zap.String("path", *outPath), zap.Int("rows", recipeStore.Len()))

	report, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode stats", zap.Error(err))
	}
	fmt.Println(string(report))
}
