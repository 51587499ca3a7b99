// ABOUTME: Runs matching scenarios through in-memory storage and the answer engine
// ABOUTME: Collects raw best matches, scores them, and exports JSON results

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/faqbot/internal/app"
	"github.com/harper/faqbot/internal/config"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of one scenario
type Result struct {
	ScenarioID   string            `json:"scenario_id"`
	ScenarioName string            `json:"scenario_name"`
	Score        Score             `json:"score"`
	Best         Score             `json:"best"`
	Sweep        []Score           `json:"sweep"`
	Outcomes     []Outcome         `json:"outcomes"`
	Analytics    *models.Analytics `json:"analytics"`
	Status       string            `json:"status"`
}

// Runner evaluates scenarios at a fixed threshold
type Runner struct {
	threshold   float64
	minAccuracy float64
}

// NewRunner creates a runner. Scenarios pass when accuracy at threshold reaches minAccuracy.
func NewRunner(threshold, minAccuracy float64) *Runner {
	return &Runner{threshold: threshold, minAccuracy: minAccuracy}
}

// Run evaluates one scenario against a fresh in-memory database. No LLM is
// called: queries below the threshold get the fallback diagnostic.
func (r *Runner) Run(ctx context.Context, s Scenario) (Result, error) {
	store, err := storage.NewStorageInMemory()
	if err != nil {
		return Result{}, err
	}
	defer store.Close()

	cfg := config.Default()
	cfg.MatchThreshold = r.threshold
	a, err := app.NewWithStorage(ctx, cfg, store, nil)
	if err != nil {
		return Result{}, err
	}

	faqs := make([]models.FAQ, 0, len(s.FAQs))
	for _, e := range s.FAQs {
		faq, err := models.NewFAQ(e.Question, e.Answer)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		faqs = append(faqs, *faq)
	}
	if _, err := store.ImportFAQs(ctx, faqs); err != nil {
		return Result{}, err
	}

	snap := core.BuildIndex(models.Questions(faqs))
	outcomes := make([]Outcome, 0, len(s.Queries))
	for i, q := range s.Queries {
		idx, conf := snap.BestMatch(core.Normalize(q.Query))
		o := Outcome{Query: q.Query, Expect: q.Expect, BestIndex: idx, Confidence: conf}
		outcomes = append(outcomes, o)

		answer := a.Engine.Answer(ctx, q.Query, fmt.Sprintf("%s-%d", s.ID, i))
		if (answer.Source == models.SourceFAQ) != o.routed(r.threshold) {
			return Result{}, fmt.Errorf("scenario %s: engine routed %q to %s at confidence %.3f", s.ID, q.Query, answer.Source, answer.Confidence)
		}
		log.WithFields(log.Fields{
			"query":      q.Query,
			"source":     answer.Source,
			"confidence": fmt.Sprintf("%.3f", conf),
			"correct":    o.CorrectAt(r.threshold),
		}).Debug("benchmark query")
	}

	analytics, err := store.Analytics(ctx)
	if err != nil {
		return Result{}, err
	}

	sweep := Sweep(outcomes, 0.1, 0.9, 0.05)
	best, err := Best(sweep)
	if err != nil {
		return Result{}, err
	}

	score := Evaluate(outcomes, r.threshold)
	status := "FAIL"
	if score.Accuracy >= r.minAccuracy {
		status = "PASS"
	}

	return Result{
		ScenarioID:   s.ID,
		ScenarioName: s.Name,
		Score:        score,
		Best:         best,
		Sweep:        sweep,
		Outcomes:     outcomes,
		Analytics:    analytics,
		Status:       status,
	}, nil
}

// RunAll evaluates scenarios in order
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		res, err := r.Run(ctx, s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ExportResults writes results with a summary as indented JSON
func ExportResults(results []Result, threshold float64, outputPath string) error {
	summary := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"threshold": threshold,
		"results":   results,
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
