// ABOUTME: Command-line runner for the FAQ matching benchmarks
// ABOUTME: Scores threshold routing on labeled paraphrases and writes JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/harper/faqbot/benchmarks/matching"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/logging"
	log "github.com/sirupsen/logrus"
)

func main() {
	scenarioID := flag.String("scenario", "", "Run one scenario (support, banking). If empty, runs all.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	threshold := flag.Float64("threshold", core.DefaultThreshold, "Match threshold to evaluate")
	minAccuracy := flag.Float64("min-accuracy", 0.8, "Accuracy a scenario needs to pass")
	verbose := flag.Bool("verbose", false, "Log every query")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logging.Setup(logging.Options{Level: level})

	scenarios := matching.Scenarios()
	if *scenarioID != "" {
		s, ok := matching.ScenarioByID(*scenarioID)
		if !ok {
			log.Fatalf("Unknown scenario: %s (valid options: support, banking)", *scenarioID)
		}
		scenarios = []matching.Scenario{s}
	}

	fmt.Println("========================================")
	fmt.Println("faqbot matching benchmarks")
	fmt.Println("========================================")

	runner := matching.NewRunner(*threshold, *minAccuracy)
	results, err := runner.RunAll(context.Background(), scenarios)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	failed := 0
	for _, r := range results {
		fmt.Printf("\n%s: %s\n", r.ScenarioID, r.ScenarioName)
		fmt.Printf("  Accuracy @ %.2f: %.2f (precision %.2f, recall %.2f)\n",
			r.Score.Threshold, r.Score.Accuracy, r.Score.Precision, r.Score.Recall)
		fmt.Printf("  False accepts: %d, false rejects: %d\n", r.Score.FalseAccepts, r.Score.FalseRejects)
		fmt.Printf("  Best threshold: %.2f (accuracy %.2f)\n", r.Best.Threshold, r.Best.Accuracy)
		fmt.Printf("  Status: %s\n", r.Status)
		if r.Status != "PASS" {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Scenarios: %d, failed: %d\n", len(results), failed)
	fmt.Println("========================================")

	if err := matching.ExportResults(results, *threshold, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}
	fmt.Printf("Results exported to: %s\n", *outputPath)

	if failed > 0 {
		os.Exit(1)
	}
}
