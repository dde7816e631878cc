package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// wordRegex extracts word tokens of at least two characters.
var wordRegex = regexp.MustCompile(`\w{2,}`)

// TFIDF builds a TF-IDF index over word unigrams and bigrams with cosine
// scoring. Terms appearing in fewer than MinDocFreq documents, or in more
// than MaxDocRatio of the corpus, are pruned from the vocabulary.
type TFIDF struct {
	MinDocFreq  int
	MaxDocRatio float64
}

// NewTFIDF returns a TFIDF scorer with the default vocabulary pruning
// (terms must appear in at least 2 documents and at most 80% of them).
func NewTFIDF() *TFIDF {
	return &TFIDF{MinDocFreq: 2, MaxDocRatio: 0.8}
}

// tfidfIndex holds the precomputed document vectors and term weights.
type tfidfIndex struct {
	idf        map[string]float64
	docVectors []map[string]float64 // L2-normalized tf-idf weights per document
}

// BuildIndex tokenizes every corpus text into unigrams and bigrams, prunes
// the vocabulary by document frequency, and precomputes an L2-normalized
// tf-idf vector per document.
func (s *TFIDF) BuildIndex(corpusTexts []string) (Index, error) {
	numDocs := len(corpusTexts)

	docTerms := make([][]string, numDocs)
	docFreq := make(map[string]int)
	for i, text := range corpusTexts {
		terms := extractTerms(text)
		docTerms[i] = terms

		unique := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			unique[term] = struct{}{}
		}
		for term := range unique {
			docFreq[term]++
		}
	}

	// Prune the vocabulary and compute smoothed IDF:
	// idf = ln((1 + N) / (1 + df)) + 1
	maxDF := numDocs
	if s.MaxDocRatio > 0 {
		maxDF = int(s.MaxDocRatio * float64(numDocs))
	}
	idf := make(map[string]float64)
	for term, df := range docFreq {
		if df < s.MinDocFreq || df > maxDF {
			continue
		}
		idf[term] = math.Log(float64(1+numDocs)/float64(1+df)) + 1
	}

	vectors := make([]map[string]float64, numDocs)
	for i, terms := range docTerms {
		vectors[i] = vectorize(terms, idf)
	}

	return &tfidfIndex{idf: idf, docVectors: vectors}, nil
}

func (idx *tfidfIndex) Len() int {
	return len(idx.docVectors)
}

// Scores computes the cosine similarity of the query against every document.
// Query terms outside the pruned vocabulary contribute nothing. Dot products
// accumulate in sorted term order so repeated calls return identical bits.
func (idx *tfidfIndex) Scores(queryText string) []float64 {
	queryVec := vectorize(extractTerms(queryText), idx.idf)

	scores := make([]float64, len(idx.docVectors))
	if len(queryVec) == 0 {
		return scores
	}
	queryTerms := sortedTerms(queryVec)
	for i, docVec := range idx.docVectors {
		var dot float64
		for _, term := range queryTerms {
			if dw, ok := docVec[term]; ok {
				dot += queryVec[term] * dw
			}
		}
		scores[i] = dot
	}
	return scores
}

// extractTerms lowercases the text and returns its word unigrams followed by
// adjacent-word bigrams.
func extractTerms(text string) []string {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)

	terms := make([]string, 0, 2*len(words))
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// vectorize counts vocabulary terms, weights them by IDF, and L2-normalizes
// the result. Terms absent from idf are ignored. The norm accumulates in
// sorted term order; map iteration order would leak into the float sums
// otherwise and make equal inputs score differently across runs.
func vectorize(terms []string, idf map[string]float64) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range terms {
		if _, ok := idf[term]; ok {
			counts[term]++
		}
	}
	if len(counts) == 0 {
		return counts
	}

	sorted := sortedTerms(counts)
	var norm float64
	for _, term := range sorted {
		w := counts[term] * idf[term]
		counts[term] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for _, term := range sorted {
			counts[term] /= norm
		}
	}
	return counts
}

func sortedTerms(vec map[string]float64) []string {
	terms := make([]string, 0, len(vec))
	for term := range vec {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
