package bm25

import (
	"fmt"
	"math"
	"sort"
)

// Default BM25 parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Scorer holds the BM25 tuning constants for one session.
type Scorer struct {
	// K1 controls term-frequency saturation.
	K1 float64
	// B controls document-length normalization (0 = none, 1 = full).
	B float64
}

// NewScorer returns a Scorer with the default constants.
func NewScorer() Scorer {
	return Scorer{K1: DefaultK1, B: DefaultB}
}

// Validate checks the constants are in range.
func (s Scorer) Validate() error {
	if !finite(s.K1) || !finite(s.B) {
		return fmt.Errorf("k1 and b must be finite, got k1=%g b=%g", s.K1, s.B)
	}
	if s.K1 < 0 {
		return fmt.Errorf("k1 must be non-negative, got %g", s.K1)
	}
	if s.B < 0 || s.B > 1 {
		return fmt.Errorf("b must be between 0 and 1, got %g", s.B)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DocScore is the score of one chunk, identified by its corpus position.
type DocScore struct {
	Index int
	Score float64
}

// Score tokenizes query and scores every chunk in stats.
// The result has one entry per chunk, in corpus order, zero scores included.
func (s Scorer) Score(query string, stats *CorpusStatistics) []DocScore {
	return s.ScoreTokens(Tokenize(query), stats)
}

// ScoreTokens scores pre-tokenized query terms. Terms missing from the
// corpus are skipped. A repeated term contributes once per occurrence.
func (s Scorer) ScoreTokens(terms []string, stats *CorpusStatistics) []DocScore {
	if stats == nil {
		return []DocScore{}
	}

	scores := make([]DocScore, stats.CorpusSize)
	for i := range scores {
		scores[i].Index = i
	}

	// Empty corpus or all-empty chunks: nothing to normalize against.
	if stats.CorpusSize == 0 || stats.AvgDocLength == 0 {
		return scores
	}

	for i := range scores {
		tf := stats.TermFrequencies[i]
		norm := 1 - s.B + s.B*(float64(stats.DocLengths[i])/stats.AvgDocLength)

		var score float64
		for _, term := range terms {
			idf, ok := stats.IDF[term]
			if !ok {
				continue
			}
			score += idf * s.saturate(float64(tf[term]), norm)
		}
		scores[i].Score = score
	}

	return scores
}

// saturate is the BM25 term-frequency component f*(k1+1) / (f + k1*norm).
func (s Scorer) saturate(f, norm float64) float64 {
	denom := f + s.K1*norm
	if denom == 0 {
		return 0
	}
	return f * (s.K1 + 1) / denom
}

// Rank orders scores by descending score. Ties keep corpus order, which is
// chunk id order for a loaded index. The input slice is not modified.
func Rank(scores []DocScore) []DocScore {
	ranked := make([]DocScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// TopK returns at most k ranked entries with a positive score.
// Zero-score chunks share no query term and are never relevant.
func TopK(ranked []DocScore, k int) []DocScore {
	out := make([]DocScore, 0, min(k, len(ranked)))
	for _, ds := range ranked {
		if len(out) >= k {
			break
		}
		if ds.Score > 0 {
			out = append(out, ds)
		}
	}
	return out
}
