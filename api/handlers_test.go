package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipegen/recipe-recommender/model"
	"github.com/recipegen/recipe-recommender/services"
)

// stubRecommender records the arguments of the last Rank call and returns a
// canned result.
type stubRecommender struct {
	lastTokens []string
	lastK      int
	result     services.RecommendationResult
}

func (s *stubRecommender) Rank(queryTokens []string, k int) services.RecommendationResult {
	s.lastTokens = queryTokens
	s.lastK = k
	return s.result
}

type stubCorpus struct {
	records map[int]model.RecipeRecord
}

func (s *stubCorpus) Len() int { return len(s.records) }

func (s *stubCorpus) ByID(id int) (model.RecipeRecord, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

func setupTestRouter(recommender services.Recommender, corpus services.CorpusReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, recommender, corpus, nil)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	corpus := &stubCorpus{records: map[int]model.RecipeRecord{1: {}, 2: {}}}
	router := setupTestRouter(&stubRecommender{}, corpus)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["rows"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecommendHandlerNormalizesQuery(t *testing.T) {
	recommender := &stubRecommender{
		result: services.RecommendationResult{Items: []model.ScoredCandidate{}, QueryID: "q1"},
	}
	router := setupTestRouter(recommender, &stubCorpus{})

	w := postJSON(t, router, "/recommend", RecommendRequest{
		Ingredients: []string{
			"2 tbsp extra-virgin olive oil",
			"1 1/2 cups chopped fresh parsley",
			"olive oil", // duplicate after normalization
			"2 cups",    // normalizes to nothing
		},
		K: 3,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"olive_oil", "parsley"}, recommender.lastTokens)
	assert.Equal(t, 3, recommender.lastK)
}

func TestRecommendHandlerCoercesK(t *testing.T) {
	recommender := &stubRecommender{}
	router := setupTestRouter(recommender, &stubCorpus{})

	w := postJSON(t, router, "/recommend", RecommendRequest{Ingredients: []string{"egg"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, recommender.lastK)

	w = postJSON(t, router, "/recommend", map[string]interface{}{"ingredients": []string{"egg"}, "k": -5})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, recommender.lastK)
}

func TestRecommendHandlerInvalidBody(t *testing.T) {
	router := setupTestRouter(&stubRecommender{}, &stubCorpus{})

	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeInvalidJSON, apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestRecommendHandlerMissingIngredients(t *testing.T) {
	router := setupTestRouter(&stubRecommender{}, &stubCorpus{})

	w := postJSON(t, router, "/recommend", map[string]interface{}{"k": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendHandlerRendersResult(t *testing.T) {
	recommender := &stubRecommender{
		result: services.RecommendationResult{
			Items: []model.ScoredCandidate{{
				ID: 5, Title: "Omelette", Score: 0.8, Coverage: 1.0,
				Matched: []string{"egg"}, Missing: []string{},
				Ingredients: []string{"egg", "butter"},
			}},
			LowConfidence: false,
			QueryID:       "q2",
		},
	}
	router := setupTestRouter(recommender, &stubCorpus{})

	w := postJSON(t, router, "/recommend", RecommendRequest{Ingredients: []string{"egg"}})
	assert.Equal(t, http.StatusOK, w.Code)

	var result services.RecommendationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, 5, result.Items[0].ID)
	assert.Equal(t, "Omelette", result.Items[0].Title)
	assert.False(t, result.LowConfidence)
}

func TestGetRecipeHandler(t *testing.T) {
	corpus := &stubCorpus{records: map[int]model.RecipeRecord{
		7: {ID: 7, Title: "Pancakes", IngredientTokens: []string{"flour", "egg", "milk"}},
	}}
	router := setupTestRouter(&stubRecommender{}, corpus)

	req := httptest.NewRequest(http.MethodGet, "/recipes/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var rec model.RecipeRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "Pancakes", rec.Title)

	req = httptest.NewRequest(http.MethodGet, "/recipes/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/recipes/abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
