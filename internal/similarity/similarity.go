// Package similarity provides the text-similarity primitive used for
// candidate generation: an index built once over the corpus search texts
// that scores a query text against every document.
package similarity

// Index scores a query text against every corpus document. Implementations
// must be deterministic (same corpus + same query always yields the same
// scores) and O(corpus size) or better per query. Indexes are immutable
// after construction and safe for concurrent readers.
type Index interface {
	// Scores returns one score per corpus document, in corpus order.
	// Higher is more similar. An empty corpus yields an empty slice.
	Scores(queryText string) []float64

	// Len returns the number of indexed documents.
	Len() int
}

// Scorer builds a similarity Index from corpus texts.
type Scorer interface {
	BuildIndex(corpusTexts []string) (Index, error)
}
