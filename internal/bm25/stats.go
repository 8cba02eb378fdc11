package bm25

import "math"

// CorpusStatistics is the fitted state for one scoring session.
// Slices are indexed by chunk position in the corpus passed to Fit.
type CorpusStatistics struct {
	CorpusSize        int
	DocLengths        []int
	AvgDocLength      float64
	TermFrequencies   []map[string]int
	DocumentFrequency map[string]int
	IDF               map[string]float64
}

// Fit tokenizes every text and computes the corpus statistics.
// An empty corpus is valid and yields AvgDocLength 0 and no terms.
func Fit(corpus []string) *CorpusStatistics {
	stats := &CorpusStatistics{
		CorpusSize:        len(corpus),
		DocLengths:        make([]int, len(corpus)),
		TermFrequencies:   make([]map[string]int, len(corpus)),
		DocumentFrequency: make(map[string]int),
		IDF:               make(map[string]float64),
	}

	total := 0
	for i, text := range corpus {
		tokens := Tokenize(text)
		counts := TermCounts(tokens)

		stats.DocLengths[i] = len(tokens)
		stats.TermFrequencies[i] = counts
		total += len(tokens)

		for term := range counts {
			stats.DocumentFrequency[term]++
		}
	}

	if stats.CorpusSize > 0 {
		stats.AvgDocLength = float64(total) / float64(stats.CorpusSize)
	}

	for term, df := range stats.DocumentFrequency {
		stats.IDF[term] = IDF(stats.CorpusSize, df)
	}

	return stats
}

// IDF is the Robertson-Sparck Jones weight with +1 smoothing:
//
//	ln((n - df + 0.5) / (df + 0.5) + 1)
//
// It stays positive for every 0 <= df <= n, so ubiquitous terms never
// weigh negatively.
func IDF(n, df int) float64 {
	return math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// TermCount returns the number of distinct terms in the corpus.
func (s *CorpusStatistics) TermCount() int {
	return len(s.IDF)
}
