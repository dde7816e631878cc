package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipegen/recipe-recommender/api"
	"github.com/recipegen/recipe-recommender/config"
	"github.com/recipegen/recipe-recommender/internal/corpus"
	"github.com/recipegen/recipe-recommender/internal/logging"
	"github.com/recipegen/recipe-recommender/internal/ranker"
	"github.com/recipegen/recipe-recommender/internal/similarity"
)

func main() {
	var (
		help     = flag.Bool("help", false, "Show help message")
		version  = flag.Bool("version", false, "Show version information")
		port     = flag.String("port", "8080", "Port to run the server on")
		dataPath = flag.String("data", "", "Processed corpus file (overrides DATA_PROCESSED)")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Recipe Recommender - ranks recipes against your ingredients\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                  # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                      # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data data/processed/recipes.gob # Use a specific corpus file\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("Recipe Recommender v1.0.0\n")
		return
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	settings, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *dataPath != "" {
		settings.DataPath = *dataPath
	}

	recipeStore, err := corpus.Load(settings.DataPath, logger)
	if err != nil {
		logger.Fatal("failed to load corpus", zap.Error(err))
	}

	simIndex, err := similarity.NewTFIDF().BuildIndex(recipeStore.SearchTexts())
	if err != nil {
		logger.Fatal("failed to build similarity index", zap.Error(err))
	}
	logger.Info("similarity index built", zap.Int("documents", simIndex.Len()))

	recommender, err := ranker.NewService(recipeStore, simIndex, settings, logger)
	if err != nil {
		logger.Fatal("failed to create ranker", zap.Error(err))
	}

	router := gin.Default()
	api.SetupRoutes(router, recommender, recipeStore, logger)

	logger.Info("starting server", zap.String("port", *port))
	if err := router.Run(":" + *port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
