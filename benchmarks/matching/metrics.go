// ABOUTME: Scoring for FAQ matching outcomes at a given confidence threshold
// ABOUTME: Counts correct routes, false accepts and false rejects, and sweeps thresholds

package matching

import (
	"fmt"
	"math"
)

// Outcome is the raw best match for one labeled query
type Outcome struct {
	Query      string  `json:"query"`
	Expect     int     `json:"expect"`
	BestIndex  int     `json:"best_index"`
	Confidence float64 `json:"confidence"`
}

// Score summarizes outcomes at one threshold
type Score struct {
	Threshold    float64 `json:"threshold"`
	Total        int     `json:"total"`
	Correct      int     `json:"correct"`
	FalseAccepts int     `json:"false_accepts"`
	FalseRejects int     `json:"false_rejects"`
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
}

// routed reports whether an outcome is answered from the corpus at threshold
func (o Outcome) routed(threshold float64) bool {
	return o.Confidence >= threshold
}

// CorrectAt reports whether the outcome is handled as labeled at threshold
func (o Outcome) CorrectAt(threshold float64) bool {
	if o.Expect == NoMatch {
		return !o.routed(threshold)
	}
	return o.routed(threshold) && o.BestIndex == o.Expect
}

// Evaluate scores outcomes at threshold. A false accept answers from the
// wrong FAQ or answers a query that should fall back; a false reject falls
// back on a query that has a FAQ.
func Evaluate(outcomes []Outcome, threshold float64) Score {
	s := Score{Threshold: threshold, Total: len(outcomes)}
	var routed, expected, hits int
	for _, o := range outcomes {
		if o.Expect != NoMatch {
			expected++
		}
		if o.routed(threshold) {
			routed++
			if o.Expect != NoMatch && o.BestIndex == o.Expect {
				hits++
			} else {
				s.FalseAccepts++
			}
		} else if o.Expect != NoMatch {
			s.FalseRejects++
		}
		if o.CorrectAt(threshold) {
			s.Correct++
		}
	}

	s.Accuracy = ratio(s.Correct, s.Total)
	s.Precision = ratio(hits, routed)
	s.Recall = ratio(hits, expected)
	return s
}

// Sweep evaluates outcomes at every threshold from lo to hi inclusive
func Sweep(outcomes []Outcome, lo, hi, step float64) []Score {
	if step <= 0 {
		return nil
	}
	var scores []Score
	steps := int(math.Round((hi - lo) / step))
	for i := 0; i <= steps; i++ {
		t := math.Round((lo+float64(i)*step)*100) / 100
		scores = append(scores, Evaluate(outcomes, t))
	}
	return scores
}

// Best returns the score with the highest accuracy, preferring the lower threshold on ties
func Best(scores []Score) (Score, error) {
	if len(scores) == 0 {
		return Score{}, fmt.Errorf("no scores to compare")
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Accuracy > best.Accuracy {
			best = s
		}
	}
	return best, nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
