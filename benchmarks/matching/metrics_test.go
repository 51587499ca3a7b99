// ABOUTME: Tests for benchmark scoring and the scenario runner
// ABOUTME: Uses hand-built outcomes so expected counts are exact

package matching

import (
	"context"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	outcomes := []Outcome{
		{Query: "hit", Expect: 0, BestIndex: 0, Confidence: 0.9},
		{Query: "wrong faq", Expect: 1, BestIndex: 2, Confidence: 0.5},
		{Query: "missed", Expect: 2, BestIndex: 2, Confidence: 0.2},
		{Query: "fallback ok", Expect: NoMatch, BestIndex: 0, Confidence: 0.1},
		{Query: "fallback broken", Expect: NoMatch, BestIndex: 1, Confidence: 0.4},
	}

	s := Evaluate(outcomes, 0.3)

	if s.Total != 5 {
		t.Errorf("Total = %d, want 5", s.Total)
	}
	if s.Correct != 2 {
		t.Errorf("Correct = %d, want 2", s.Correct)
	}
	if s.FalseAccepts != 2 {
		t.Errorf("FalseAccepts = %d, want 2", s.FalseAccepts)
	}
	if s.FalseRejects != 1 {
		t.Errorf("FalseRejects = %d, want 1", s.FalseRejects)
	}
	if math.Abs(s.Accuracy-0.4) > 1e-9 {
		t.Errorf("Accuracy = %v, want 0.4", s.Accuracy)
	}
	if math.Abs(s.Precision-1.0/3.0) > 1e-9 {
		t.Errorf("Precision = %v, want 1/3", s.Precision)
	}
	if math.Abs(s.Recall-1.0/3.0) > 1e-9 {
		t.Errorf("Recall = %v, want 1/3", s.Recall)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	s := Evaluate(nil, 0.3)
	if s.Total != 0 || s.Accuracy != 0 || s.Precision != 0 || s.Recall != 0 {
		t.Errorf("Evaluate(nil) = %+v, want zeros", s)
	}
}

func TestCorrectAt_ThresholdIsInclusive(t *testing.T) {
	o := Outcome{Expect: 0, BestIndex: 0, Confidence: 0.3}
	if !o.CorrectAt(0.3) {
		t.Error("confidence equal to threshold should route to the FAQ")
	}
	if o.CorrectAt(0.31) {
		t.Error("confidence below threshold should fall back")
	}
}

func TestSweepAndBest(t *testing.T) {
	outcomes := []Outcome{
		{Expect: 0, BestIndex: 0, Confidence: 0.6},
		{Expect: NoMatch, BestIndex: 0, Confidence: 0.35},
	}

	scores := Sweep(outcomes, 0.1, 0.9, 0.1)
	if len(scores) != 9 {
		t.Fatalf("Sweep() returned %d scores, want 9", len(scores))
	}
	if scores[0].Threshold != 0.1 || scores[8].Threshold != 0.9 {
		t.Errorf("Sweep() thresholds = %v..%v, want 0.1..0.9", scores[0].Threshold, scores[8].Threshold)
	}

	best, err := Best(scores)
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if best.Threshold != 0.4 || best.Accuracy != 1 {
		t.Errorf("Best() = %+v, want threshold 0.4 with accuracy 1", best)
	}

	if Sweep(outcomes, 0.1, 0.9, 0) != nil {
		t.Error("Sweep() with zero step should return nil")
	}
	if _, err := Best(nil); err == nil {
		t.Error("Best(nil) should fail")
	}
}

func TestRunner_ExactQuestions(t *testing.T) {
	s := Scenario{
		ID:   "exact",
		Name: "exact questions",
		FAQs: []Entry{
			{"How do I reset my password?", "Use the reset link."},
			{"What are your opening hours?", "9 to 5."},
		},
		Queries: []LabeledQuery{
			{"How do I reset my password?", 0},
			{"what are your opening hours", 1},
			{"tell me a joke", NoMatch},
		},
	}

	res, err := NewRunner(0.3, 1).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Status != "PASS" {
		t.Errorf("Status = %q, want PASS; outcomes = %+v", res.Status, res.Outcomes)
	}
	if res.Score.Correct != 3 {
		t.Errorf("Correct = %d, want 3", res.Score.Correct)
	}
	if res.Analytics.TotalChats != 3 || res.Analytics.FAQUsage != 2 || res.Analytics.AIFallbackUsage != 1 {
		t.Errorf("Analytics = %+v, want 3 chats, 2 faq, 1 ai", res.Analytics)
	}
}

func TestScenarioByID(t *testing.T) {
	for _, s := range Scenarios() {
		got, ok := ScenarioByID(s.ID)
		if !ok || got.Name != s.Name {
			t.Errorf("ScenarioByID(%q) = %v, %v", s.ID, got.Name, ok)
		}
		for _, q := range s.Queries {
			if q.Expect != NoMatch && (q.Expect < 0 || q.Expect >= len(s.FAQs)) {
				t.Errorf("%s: query %q expects out-of-range FAQ %d", s.ID, q.Query, q.Expect)
			}
		}
	}
	if _, ok := ScenarioByID("missing"); ok {
		t.Error("ScenarioByID(missing) should not be found")
	}
}
