// Package store holds the in-memory recipe corpus: the ordered records and
// their cached canonical ingredient-token sets.
package store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recipegen/recipe-recommender/internal/tokenizer"
	"github.com/recipegen/recipe-recommender/model"
)

// RecipeStore owns the loaded corpus for the process lifetime. It is
// immutable after construction: the token-set cache is built eagerly so
// concurrent ranking requests can read without locking.
type RecipeStore struct {
	records   []model.RecipeRecord
	tokenSets []map[string]struct{} // set form of each record's tokens, parallel to records
	byID      map[int]int           // recipe ID to corpus position
}

// NewRecipeStore builds a store over the given records and precomputes the
// per-record token sets.
func NewRecipeStore(records []model.RecipeRecord) *RecipeStore {
	s := &RecipeStore{records: records}
	s.buildCaches()
	return s
}

func (s *RecipeStore) buildCaches() {
	// Corpora persisted by other tools may omit derived fields. A zero ID is
	// treated as absent and defaults to the corpus position.
	for i := range s.records {
		if s.records[i].ID == 0 {
			s.records[i].ID = i
		}
		if s.records[i].SearchText == "" {
			s.records[i].SearchText = s.records[i].DerivedSearchText()
		}
	}

	s.tokenSets = make([]map[string]struct{}, len(s.records))
	s.byID = make(map[int]int, len(s.records))
	for i, rec := range s.records {
		set := make(map[string]struct{}, len(rec.IngredientTokens))
		for _, tok := range rec.IngredientTokens {
			set[tok] = struct{}{}
		}
		s.tokenSets[i] = set
		if _, taken := s.byID[rec.ID]; !taken {
			s.byID[rec.ID] = i
		}
	}
}

// Len returns the number of records in the corpus.
func (s *RecipeStore) Len() int {
	return len(s.records)
}

// Record returns the record at the given corpus position.
func (s *RecipeStore) Record(i int) model.RecipeRecord {
	return s.records[i]
}

// Tokens returns the canonical ingredient tokens of the record at the given
// corpus position, in first-seen order.
func (s *RecipeStore) Tokens(i int) []string {
	return s.records[i].IngredientTokens
}

// TokenSet returns the cached set form of the record's ingredient tokens.
// Callers must not mutate the returned map.
func (s *RecipeStore) TokenSet(i int) map[string]struct{} {
	return s.tokenSets[i]
}

// ByID looks a record up by its recipe ID.
func (s *RecipeStore) ByID(id int) (model.RecipeRecord, bool) {
	if i, ok := s.byID[id]; ok {
		return s.records[i], true
	}
	return model.RecipeRecord{}, false
}

// SearchTexts returns the search_text field of every record in corpus order,
// the input for similarity index construction.
func (s *RecipeStore) SearchTexts() []string {
	texts := make([]string, len(s.records))
	for i, rec := range s.records {
		texts[i] = rec.SearchText
	}
	return texts
}

// CoerceIngredients turns a stored ingredients value into canonical tokens.
// Three shapes are accepted: a native list of strings, a string-encoded list
// ("['egg','milk']" or `["egg","milk"]`), and a delimited free-text string
// ("egg, milk; sugar"). Anything unparseable yields an empty token set,
// never an error. Tokens are de-duplicated preserving first-seen order.
func CoerceIngredients(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return normalizeAll(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			items = append(items, fmt.Sprintf("%v", item))
		}
		return normalizeAll(items)
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if items, ok := parseEncodedList(trimmed); ok {
				return normalizeAll(items)
			}
		}
		return normalizeAll([]string{trimmed})
	default:
		return []string{}
	}
}

// normalizeAll runs SplitAndNormalize over each raw item and de-duplicates
// the combined token stream preserving first-seen order.
func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tok := range tokenizer.SplitAndNormalize(item) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}

// parseEncodedList parses a string-encoded list, accepting JSON first and
// falling back to Python-literal style single quotes.
func parseEncodedList(s string) ([]string, bool) {
	var items []interface{}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		rewritten := strings.ReplaceAll(s, `'`, `"`)
		if err := json.Unmarshal([]byte(rewritten), &items); err != nil {
			return nil, false
		}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out, true
}

// gobRecipeStoreData is a helper struct for gob encoding/decoding. Only the
// records are persisted; caches are rebuilt on decode.
type gobRecipeStoreData struct {
	Records []model.RecipeRecord
}

// GobEncode implements gob.GobEncoder for RecipeStore.
func (s *RecipeStore) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobRecipeStoreData{Records: s.records}); err != nil {
		return nil, fmt.Errorf("failed to gob encode recipe store: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder for RecipeStore.
func (s *RecipeStore) GobDecode(data []byte) error {
	var decoded gobRecipeStoreData
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode recipe store: %w", err)
	}
	s.records = decoded.Records
	s.buildCaches()
	return nil
}
