// Package api exposes the recommender over HTTP: a recommendation endpoint
// plus health, stats, and recipe lookup.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipegen/recipe-recommender/internal/tokenizer"
	"github.com/recipegen/recipe-recommender/services"
)

// maxRequestBodySize bounds recommendation request bodies.
const maxRequestBodySize = 1 << 20 // 1 MB

// API holds dependencies for the HTTP handlers.
type API struct {
	recommender services.Recommender
	corpus      services.CorpusReader
	logger      *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(recommender services.Recommender, corpus services.CorpusReader, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		recommender: recommender,
		corpus:      corpus,
		logger:      logger,
	}
}

// SetupRoutes defines all the API routes for the recommender.
func SetupRoutes(router *gin.Engine, recommender services.Recommender, corpus services.CorpusReader, logger *zap.Logger) {
	apiHandler := NewAPI(recommender, corpus, logger)

	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.StatsHandler)
	router.POST("/recommend", apiHandler.RecommendHandler)
	router.GET("/recipes/:id", apiHandler.GetRecipeHandler)
}

// RecommendRequest is the JSON body of a recommendation query: raw
// ingredient strings as the user typed them, and how many results to return.
type RecommendRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	K           int      `json:"k"`
}

// RecommendHandler normalizes the raw ingredient strings into canonical
// query tokens and ranks the corpus against them. Raw strings that
// normalize to nothing are dropped; duplicates keep their first position.
func (api *API) RecommendHandler(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	queryTokens := make([]string, 0, len(req.Ingredients))
	seen := make(map[string]struct{})
	for _, raw := range req.Ingredients {
		token := tokenizer.Normalize(raw)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		queryTokens = append(queryTokens, token)
	}

	k := req.K
	if k < 1 {
		k = 1
	}

	result := api.recommender.Rank(queryTokens, k)

	api.logger.Info("recommendation served",
		zap.String("query_id", result.QueryID),
		zap.Int("query_tokens", len(queryTokens)),
		zap.Int("items", len(result.Items)),
		zap.Bool("low_confidence", result.LowConfidence),
		zap.Int64("took_ms", result.Took),
	)
	c.JSON(http.StatusOK, result)
}

// GetRecipeHandler returns a single corpus record by its recipe ID.
func (api *API) GetRecipeHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Recipe ID must be an integer")
		return
	}

	record, ok := api.corpus.ByID(id)
	if !ok {
		SendError(c, http.StatusNotFound, ErrorCodeRecipeNotFound, "Recipe with ID "+strconv.Itoa(id)+" not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

// HealthCheckHandler reports service status and the loaded corpus size.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   api.corpus.Len(),
	})
}

// StatsHandler exposes corpus-level statistics.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"recipes": api.corpus.Len(),
	})
}
