// Package main runs the vacuum simulation over many seeds and reports
// coverage statistics.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/elektrokombinacija/robovac/internal/config"
	"github.com/elektrokombinacija/robovac/internal/sim"
)

// BenchmarkResult stores results from a single seeded run.
type BenchmarkResult struct {
	Timestamp   string  `json:"timestamp"`
	CommitHash  string  `json:"commit_hash"`
	GoVersion   string  `json:"go_version"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	RunID       string  `json:"run_id"`
	Seed        int64   `json:"seed"`
	Ticks       int     `json:"ticks"`
	RuntimeMs   float64 `json:"runtime_ms"`
	FreeTiles   int     `json:"free_tiles"`
	Cleaned     int     `json:"cleaned_tiles"`
	Coverage    float64 `json:"coverage_percent"`
	Collisions  int     `json:"collisions"`
	StuckEvents int     `json:"stuck_events"`
	Recharges   int     `json:"recharges"`
}

// Summary aggregates all runs.
type Summary struct {
	Runs            int     `json:"runs"`
	Ticks           int     `json:"ticks"`
	CoverageMean    float64 `json:"coverage_mean"`
	CoverageStdDev  float64 `json:"coverage_stddev"`
	CoverageMin     float64 `json:"coverage_min"`
	CoverageMax     float64 `json:"coverage_max"`
	CollisionsMean  float64 `json:"collisions_mean"`
	StuckEventsMean float64 `json:"stuck_events_mean"`
	RuntimeMsMean   float64 `json:"runtime_ms_mean"`
	GeneratedAt     string  `json:"generated_at"`
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// runSeed simulates one seed.
func runSeed(ctx context.Context, base sim.Config, seed int64, ticks int, logger *zap.Logger) (*BenchmarkResult, error) {
	cfg := base
	cfg.Seed = seed

	s, err := sim.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := s.Run(ctx, ticks)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}

	return &BenchmarkResult{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		RunID:       m.RunID,
		Seed:        seed,
		Ticks:       m.Ticks,
		RuntimeMs:   float64(time.Since(start).Microseconds()) / 1000.0,
		FreeTiles:   m.FreeTiles,
		Cleaned:     m.CleanedTiles,
		Coverage:    m.Coverage,
		Collisions:  m.Collisions,
		StuckEvents: m.StuckEvents,
		Recharges:   m.Recharges,
	}, nil
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"run_id", "seed", "ticks", "runtime_ms",
		"free_tiles", "cleaned_tiles", "coverage_percent",
		"collisions", "stuck_events", "recharges",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.RunID, fmt.Sprintf("%d", r.Seed), fmt.Sprintf("%d", r.Ticks), fmt.Sprintf("%.3f", r.RuntimeMs),
			fmt.Sprintf("%d", r.FreeTiles), fmt.Sprintf("%d", r.Cleaned), fmt.Sprintf("%.2f", r.Coverage),
			fmt.Sprintf("%d", r.Collisions), fmt.Sprintf("%d", r.StuckEvents), fmt.Sprintf("%d", r.Recharges),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func summarize(results []*BenchmarkResult, ticks int) Summary {
	s := Summary{
		Runs:        len(results),
		Ticks:       ticks,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(results) == 0 {
		return s
	}

	coverage := make([]float64, len(results))
	collisions := make([]float64, len(results))
	stuck := make([]float64, len(results))
	runtimes := make([]float64, len(results))
	for i, r := range results {
		coverage[i] = r.Coverage
		collisions[i] = float64(r.Collisions)
		stuck[i] = float64(r.StuckEvents)
		runtimes[i] = r.RuntimeMs
	}

	s.CoverageMean, s.CoverageStdDev = stat.MeanStdDev(coverage, nil)
	if len(results) == 1 {
		s.CoverageStdDev = 0
	}
	s.CoverageMin, s.CoverageMax = coverage[0], coverage[0]
	for _, c := range coverage[1:] {
		if c < s.CoverageMin {
			s.CoverageMin = c
		}
		if c > s.CoverageMax {
			s.CoverageMax = c
		}
	}
	s.CollisionsMean = stat.Mean(collisions, nil)
	s.StuckEventsMean = stat.Mean(stuck, nil)
	s.RuntimeMsMean = stat.Mean(runtimes, nil)
	return s
}

func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(s Summary) {
	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-18s %d x %d ticks\n", "Runs", s.Runs, s.Ticks)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-18s %.2f%% ± %.2f\n", "Coverage", s.CoverageMean, s.CoverageStdDev)
	fmt.Printf("%-18s %.2f%% .. %.2f%%\n", "Coverage range", s.CoverageMin, s.CoverageMax)
	fmt.Printf("%-18s %.1f\n", "Collisions (avg)", s.CollisionsMean)
	fmt.Printf("%-18s %.2f\n", "Stuck (avg)", s.StuckEventsMean)
	fmt.Printf("%-18s %.2f\n", "Runtime ms (avg)", s.RuntimeMsMean)
}

func main() {
	configPath := flag.String("config", "robovac.yaml", "YAML config file (missing file = defaults)")
	seeds := flag.Int("seeds", 20, "Number of seeds to run (1..N)")
	ticks := flag.Int("ticks", 3600, "Ticks per run")
	outDir := flag.String("out", "evidence", "Output directory for results.csv and summary.json")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ProgressEvery = 0

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	commit := getGitCommit()
	fmt.Printf("Running benchmarks: %d seeds x %d ticks\n", *seeds, *ticks)

	var results []*BenchmarkResult
	for seed := int64(1); seed <= int64(*seeds); seed++ {
		if *verbose {
			fmt.Printf("[%d/%d] seed %d ... ", seed, *seeds, seed)
		} else {
			fmt.Printf("\r[%d/%d] Running...", seed, *seeds)
		}

		result, err := runSeed(context.Background(), cfg.Config, seed, *ticks, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			continue
		}
		result.CommitHash = commit
		results = append(results, result)

		if *verbose {
			fmt.Printf("%.1f%% (%.2fms)\n", result.Coverage, result.RuntimeMs)
		}
	}
	fmt.Println()

	csvPath := filepath.Join(*outDir, "results.csv")
	if err := writeCSV(results, csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", csvPath)

	summary := summarize(results, *ticks)
	summaryPath := filepath.Join(*outDir, "summary.json")
	if err := writeJSON(summary, summaryPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Summary written to: %s\n", summaryPath)

	printSummary(summary)
}
