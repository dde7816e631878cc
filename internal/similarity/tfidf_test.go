package similarity

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func buildTestIndex(t *testing.T, scorer *TFIDF, texts []string) Index {
	t.Helper()
	idx, err := scorer.BuildIndex(texts)
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	return idx
}

func TestTFIDFEmptyCorpus(t *testing.T) {
	idx := buildTestIndex(t, NewTFIDF(), []string{})
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if scores := idx.Scores("anything"); len(scores) != 0 {
		t.Errorf("Scores() returned %d scores for empty corpus", len(scores))
	}
}

func TestTFIDFRanksSharedTermsHigher(t *testing.T) {
	scorer := &TFIDF{MinDocFreq: 1, MaxDocRatio: 1.0}
	idx := buildTestIndex(t, scorer, []string{
		"chicken broth garlic onion",
		"chocolate cake sugar flour",
		"chicken garlic butter",
	})

	scores := idx.Scores("chicken garlic")
	if len(scores) != 3 {
		t.Fatalf("Scores() returned %d scores, want 3", len(scores))
	}
	if scores[1] >= scores[0] || scores[1] >= scores[2] {
		t.Errorf("unrelated document scored too high: %v", scores)
	}
	if scores[0] <= 0 || scores[2] <= 0 {
		t.Errorf("matching documents scored zero: %v", scores)
	}
}

func TestTFIDFDeterminism(t *testing.T) {
	texts := []string{
		"tomato basil mozzarella",
		"tomato soup cream",
		"basil pesto pine nut",
	}
	scorer := &TFIDF{MinDocFreq: 1, MaxDocRatio: 1.0}
	idxA := buildTestIndex(t, scorer, texts)
	idxB := buildTestIndex(t, scorer, texts)

	a := idxA.Scores("tomato basil")
	b := idxB.Scores("tomato basil")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("scores differ across identical builds: %v vs %v", a, b)
	}
	if !reflect.DeepEqual(a, idxA.Scores("tomato basil")) {
		t.Errorf("scores differ across repeated queries on the same index")
	}
}

// A two-term query only exercises a two-element float sum, which is
// order-insensitive. Wide queries over a corpus with heterogeneous document
// frequencies are where a map-ordered accumulation would drift at the ULP
// level, so repeated scoring must stay bit-identical there too.
func TestTFIDFDeterminismWideQuery(t *testing.T) {
	staples := []string{
		"salt", "pepper", "onion", "garlic", "butter", "flour", "sugar",
		"egg", "milk", "cream", "lemon", "thyme", "basil", "paprika",
	}
	texts := make([]string, 60)
	for i := range texts {
		var sb strings.Builder
		// Each staple lands in a different share of the corpus, spreading
		// the document frequencies and therefore the IDF weights.
		for j, w := range staples {
			if i%(j+2) == 0 {
				sb.WriteString(w)
				sb.WriteString(" ")
			}
		}
		sb.WriteString(fmt.Sprintf("dish%d filler%d", i, i%7))
		texts[i] = sb.String()
	}
	query := strings.Join(staples, " ") + " dish3 filler2 unknown"

	scorer := &TFIDF{MinDocFreq: 2, MaxDocRatio: 0.8}
	idx := buildTestIndex(t, scorer, texts)

	base := idx.Scores(query)
	for i := 0; i < 50; i++ {
		if got := idx.Scores(query); !reflect.DeepEqual(got, base) {
			t.Fatalf("run %d: scores diverged from first run", i)
		}
	}

	rebuilt := buildTestIndex(t, scorer, texts)
	if got := rebuilt.Scores(query); !reflect.DeepEqual(got, base) {
		t.Errorf("rebuilt index produced different scores for the same corpus")
	}
}

func TestTFIDFVocabularyPruning(t *testing.T) {
	// "truffle" appears in a single document; with MinDocFreq 2 it is pruned
	// and cannot contribute to any score.
	idx := buildTestIndex(t, &TFIDF{MinDocFreq: 2, MaxDocRatio: 1.0}, []string{
		"truffle oil pasta",
		"pasta sauce",
		"pasta salad",
	})

	scores := idx.Scores("truffle")
	for i, s := range scores {
		if s != 0 {
			t.Errorf("pruned term scored %f against doc %d", s, i)
		}
	}
}

func TestTFIDFBigrams(t *testing.T) {
	scorer := &TFIDF{MinDocFreq: 1, MaxDocRatio: 1.0}
	idx := buildTestIndex(t, scorer, []string{
		"red wine vinegar",
		"red pepper wine sauce",
	})

	// Both documents share all three unigrams of the query with doc 0, but
	// only doc 0 contains the "red wine" bigram.
	scores := idx.Scores("red wine")
	if scores[0] <= scores[1] {
		t.Errorf("bigram match should outrank split words: %v", scores)
	}
}

func TestTFIDFQueryOutsideVocabulary(t *testing.T) {
	scorer := &TFIDF{MinDocFreq: 1, MaxDocRatio: 1.0}
	idx := buildTestIndex(t, scorer, []string{"apple pie", "pumpkin pie"})

	scores := idx.Scores("zucchini")
	want := []float64{0, 0}
	if !reflect.DeepEqual(scores, want) {
		t.Errorf("Scores() = %v, want %v", scores, want)
	}
}
