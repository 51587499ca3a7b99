// ABOUTME: TF-IDF similarity index over the FAQ question corpus
// ABOUTME: Snapshots are immutable and published atomically on every rebuild
package core

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// termWeight is one non-zero component of a sparse vector
type termWeight struct {
	term   int
	weight float64
}

// IndexSnapshot is an immutable TF-IDF model built from one corpus.
// Rows are L2 normalized, so a dot product is the cosine similarity.
type IndexSnapshot struct {
	vocabulary map[string]int
	idf        []float64
	docs       [][]termWeight
}

// BuildIndex computes a snapshot for the given questions. It returns nil for
// an empty corpus, which callers treat as "no matching possible".
func BuildIndex(questions []string) *IndexSnapshot {
	if len(questions) == 0 {
		return nil
	}

	tokenized := make([][]string, len(questions))
	df := make(map[string]int)
	for i, q := range questions {
		tokenized[i] = tokenize(q)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, term := range tokenized[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// Sorted vocabulary keeps term ids stable across rebuilds of the same corpus
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	snap := &IndexSnapshot{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		docs:       make([][]termWeight, len(questions)),
	}
	n := float64(len(questions))
	for i, term := range terms {
		snap.vocabulary[term] = i
		snap.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	for i, tokens := range tokenized {
		snap.docs[i] = snap.vectorize(tokens)
	}
	return snap
}

// Len returns the number of indexed questions
func (s *IndexSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// VocabularySize returns the number of distinct indexed terms
func (s *IndexSnapshot) VocabularySize() int {
	if s == nil {
		return 0
	}
	return len(s.vocabulary)
}

// BestMatch returns the position of the most similar question and the cosine
// similarity in [0, 1]. Ties go to the earliest question. Query terms outside
// the vocabulary are ignored, so a query with no overlap scores 0.
func (s *IndexSnapshot) BestMatch(query string) (int, float64) {
	if s.Len() == 0 {
		return -1, 0
	}

	q := s.vectorize(tokenize(query))
	qw := make(map[int]float64, len(q))
	for _, tw := range q {
		qw[tw.term] = tw.weight
	}

	best, bestScore := 0, 0.0
	for i, doc := range s.docs {
		score := 0.0
		for _, tw := range doc {
			score += tw.weight * qw[tw.term]
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, clamp01(bestScore)
}

// vectorize turns tokens into a normalized sparse TF-IDF vector ordered by term id
func (s *IndexSnapshot) vectorize(tokens []string) []termWeight {
	counts := make(map[int]int)
	for _, tok := range tokens {
		if id, ok := s.vocabulary[tok]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make([]termWeight, 0, len(counts))
	norm := 0.0
	for id, c := range counts {
		w := float64(c) * s.idf[id]
		vec = append(vec, termWeight{term: id, weight: w})
		norm += w * w
	}
	norm = math.Sqrt(norm)
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SimilarityIndex holds the current snapshot. Rebuild replaces it wholesale;
// readers always see either the old or the new snapshot, never a mix.
type SimilarityIndex struct {
	current atomic.Pointer[IndexSnapshot]
	mu      sync.Mutex
}

// NewSimilarityIndex creates an unset index
func NewSimilarityIndex() *SimilarityIndex {
	return &SimilarityIndex{}
}

// Rebuild computes a fresh snapshot from the questions and publishes it
func (ix *SimilarityIndex) Rebuild(questions []string) *IndexSnapshot {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	snap := BuildIndex(questions)
	ix.current.Store(snap)
	return snap
}

// Snapshot returns the currently published snapshot (nil when unset)
func (ix *SimilarityIndex) Snapshot() *IndexSnapshot {
	return ix.current.Load()
}

// Empty reports whether the index is unset
func (ix *SimilarityIndex) Empty() bool {
	return ix.Snapshot().Len() == 0
}

// BestMatch queries the current snapshot; ok is false when the index is unset
func (ix *SimilarityIndex) BestMatch(query string) (idx int, confidence float64, ok bool) {
	snap := ix.Snapshot()
	if snap.Len() == 0 {
		return -1, 0, false
	}
	idx, confidence = snap.BestMatch(query)
	return idx, confidence, true
}
