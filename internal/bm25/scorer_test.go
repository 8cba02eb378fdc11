package bm25

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_MatchingChunkWins(t *testing.T) {
	// Given: two chunks sharing most terms
	stats := Fit([]string{"the cat sat on the mat", "the dog sat on the log"})

	// When: querying a term present in only the first
	scores := NewScorer().Score("cat", stats)

	// Then: the first chunk scores and the second does not
	require.Len(t, scores, 2)
	assert.Greater(t, scores[0].Score, scores[1].Score)
	assert.Zero(t, scores[1].Score)
}

func TestScore_EmptyQuery(t *testing.T) {
	stats := Fit([]string{"alpha beta", "gamma"})

	scores := NewScorer().Score("", stats)

	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.Equal(t, 0.0, s.Score)
	}
}

func TestScore_EmptyCorpus(t *testing.T) {
	scores := NewScorer().Score("anything", Fit(nil))
	assert.Empty(t, scores)
}

func TestScore_AllChunksTokenless(t *testing.T) {
	stats := Fit([]string{"---", "***"})

	scores := NewScorer().Score("dash", stats)

	require.Len(t, scores, 2)
	assert.Zero(t, scores[0].Score)
	assert.Zero(t, scores[1].Score)
}

func TestScore_UnknownTermsSkipped(t *testing.T) {
	stats := Fit([]string{"alpha beta"})
	s := NewScorer()

	assert.Equal(t, s.Score("alpha", stats), s.Score("alpha zzz", stats))
}

func TestScore_RepeatedQueryTermCountsTwice(t *testing.T) {
	stats := Fit([]string{"alpha beta", "gamma delta"})
	s := NewScorer()

	once := s.Score("alpha", stats)[0].Score
	twice := s.Score("alpha alpha", stats)[0].Score

	assert.InDelta(t, 2*once, twice, 1e-9)
}

func TestScore_HigherTermFrequencyNeverLowersScore(t *testing.T) {
	s := NewScorer()
	prev := 0.0
	for reps := 1; reps <= 10; reps++ {
		doc := "filler words here"
		for i := 0; i < reps; i++ {
			doc += " cat"
		}
		stats := Fit([]string{doc, "dog bird fish"})

		got := s.Score("cat", stats)[0].Score

		assert.GreaterOrEqual(t, got, prev, "reps=%d", reps)
		prev = got
	}
}

func TestSaturate_MonotonicInFrequency(t *testing.T) {
	s := NewScorer()
	for _, norm := range []float64{0.25, 1, 4} {
		prev := 0.0
		for f := 0.0; f <= 20; f++ {
			got := s.saturate(f, norm)
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}
	}
}

func TestScorer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		scorer  Scorer
		wantErr bool
	}{
		{name: "defaults", scorer: NewScorer()},
		{name: "b zero", scorer: Scorer{K1: 1.2, B: 0}},
		{name: "b one", scorer: Scorer{K1: 1.2, B: 1}},
		{name: "negative k1", scorer: Scorer{K1: -1, B: 0.5}, wantErr: true},
		{name: "b above one", scorer: Scorer{K1: 1.2, B: 1.5}, wantErr: true},
		{name: "k1 NaN", scorer: Scorer{K1: math.NaN(), B: 0.75}, wantErr: true},
		{name: "b NaN", scorer: Scorer{K1: 1.5, B: math.NaN()}, wantErr: true},
		{name: "k1 infinite", scorer: Scorer{K1: math.Inf(1), B: 0.75}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scorer.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRank_DescendingWithStableTies(t *testing.T) {
	scores := []DocScore{
		{Index: 0, Score: 1.0},
		{Index: 1, Score: 3.0},
		{Index: 2, Score: 1.0},
		{Index: 3, Score: 0},
		{Index: 4, Score: 3.0},
	}

	ranked := Rank(scores)

	var order []int
	for _, r := range ranked {
		order = append(order, r.Index)
	}
	assert.Equal(t, []int{1, 4, 0, 2, 3}, order)
	assert.Equal(t, 0, scores[0].Index, "input must not be reordered")
}

func TestTopK_DropsZeroScores(t *testing.T) {
	ranked := []DocScore{{Index: 2, Score: 2}, {Index: 0, Score: 1}, {Index: 1, Score: 0}}

	assert.Len(t, TopK(ranked, 5), 2)
	assert.Len(t, TopK(ranked, 1), 1)
	assert.Empty(t, TopK(ranked, 0))
}
