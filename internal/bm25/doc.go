// Package bm25 implements the ranking core of docrank: tokenization,
// corpus statistics and BM25 relevance scoring.
//
// Statistics are never maintained incrementally. A search session calls Fit
// over the full chunk set and discards the result when it is done.
package bm25
