// ABOUTME: Tests for the TF-IDF similarity index
// ABOUTME: Covers exact matches, zero overlap, ties, determinism and atomic rebuilds
package core

import (
	"math"
	"sync"
	"testing"
)

const epsilon = 1e-9

func TestBuildIndex_Empty(t *testing.T) {
	if snap := BuildIndex(nil); snap != nil {
		t.Error("BuildIndex(nil) should return nil")
	}

	ix := NewSimilarityIndex()
	if !ix.Empty() {
		t.Error("new index should be empty")
	}
	if _, _, ok := ix.BestMatch("anything"); ok {
		t.Error("BestMatch on unset index should report ok=false")
	}
}

func TestBestMatch_ExactQuestion(t *testing.T) {
	snap := BuildIndex([]string{"what are your hours"})

	idx, score := snap.BestMatch(Normalize("What are your hours?"))
	if idx != 0 {
		t.Errorf("idx = %d, want 0", idx)
	}
	if math.Abs(score-1.0) > epsilon {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestBestMatch_ExactMultiTermQuestion(t *testing.T) {
	snap := BuildIndex([]string{
		"How do I reset my password",
		"Where is the shipping policy",
	})

	idx, score := snap.BestMatch("how do i reset my password")
	if idx != 0 {
		t.Errorf("idx = %d, want 0", idx)
	}
	if math.Abs(score-1.0) > epsilon {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestBestMatch_NoOverlap(t *testing.T) {
	snap := BuildIndex([]string{"what are your hours"})

	_, score := snap.BestMatch(Normalize("what is the weather today"))
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestBestMatch_PicksMostSimilar(t *testing.T) {
	snap := BuildIndex([]string{
		"how do I track my order",
		"how do I return an item for a refund",
		"what payment methods do you accept",
	})

	idx, score := snap.BestMatch("refund for returned item")
	if idx != 1 {
		t.Errorf("idx = %d, want 1", idx)
	}
	if score <= 0 || score >= 1 {
		t.Errorf("score = %v, want in (0, 1)", score)
	}
}

func TestBestMatch_TieGoesToFirst(t *testing.T) {
	snap := BuildIndex([]string{
		"shipping cost",
		"shipping cost",
		"delivery time",
	})

	idx, _ := snap.BestMatch("shipping cost")
	if idx != 0 {
		t.Errorf("idx = %d, want first of tied entries (0)", idx)
	}
}

func TestBestMatch_AllZeroReturnsFirst(t *testing.T) {
	snap := BuildIndex([]string{"alpha beta", "gamma delta"})

	idx, score := snap.BestMatch("zeta")
	if idx != 0 || score != 0 {
		t.Errorf("BestMatch() = (%d, %v), want (0, 0)", idx, score)
	}
}

func TestBestMatch_StopWordOnlyCorpus(t *testing.T) {
	snap := BuildIndex([]string{"what is this", "who are you"})
	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
	if snap.VocabularySize() != 0 {
		t.Errorf("VocabularySize() = %d, want 0", snap.VocabularySize())
	}
	if _, score := snap.BestMatch("what is this"); score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestBestMatch_Deterministic(t *testing.T) {
	questions := []string{
		"how long does shipping take",
		"can I change my shipping address",
		"do you ship internationally",
		"what is your return policy",
	}
	query := "international shipping address change"

	firstIdx, firstScore := BuildIndex(questions).BestMatch(query)
	for i := 0; i < 20; i++ {
		idx, score := BuildIndex(questions).BestMatch(query)
		if idx != firstIdx || score != firstScore {
			t.Fatalf("run %d: (%d, %v) != (%d, %v)", i, idx, score, firstIdx, firstScore)
		}
	}
}

func TestSimilarityIndex_RebuildReplaces(t *testing.T) {
	ix := NewSimilarityIndex()
	ix.Rebuild([]string{"opening hours"})
	if ix.Snapshot().Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Snapshot().Len())
	}

	ix.Rebuild([]string{"refund policy", "shipping times"})
	if ix.Snapshot().Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Snapshot().Len())
	}
	if _, score, _ := ix.BestMatch("opening hours"); score != 0 {
		t.Errorf("old vocabulary leaked into rebuilt index, score = %v", score)
	}

	ix.Rebuild(nil)
	if !ix.Empty() {
		t.Error("index should be unset after rebuilding with empty corpus")
	}
}

func TestSimilarityIndex_ConcurrentRebuildAndRead(t *testing.T) {
	ix := NewSimilarityIndex()
	corpora := [][]string{
		{"opening hours"},
		{"refund policy", "shipping times", "opening hours"},
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				ix.Rebuild(corpora[(w+i)%2])
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := ix.Snapshot()
				idx, score := snap.BestMatch("opening hours")
				if snap.Len() > 0 && (idx < 0 || idx >= snap.Len() || score < 0 || score > 1) {
					t.Errorf("inconsistent snapshot result (%d, %v) for len %d", idx, score, snap.Len())
					return
				}
			}
		}()
	}
	wg.Wait()
}
