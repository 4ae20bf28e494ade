// Command robovac runs the vacuum simulation headless and reports coverage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/config"
	"github.com/elektrokombinacija/robovac/internal/sim"
)

func main() {
	configPath := flag.String("config", "robovac.yaml", "YAML config file (missing file = defaults)")
	seed := flag.Int64("seed", 0, "Random seed (0 = use config)")
	ticks := flag.Int("ticks", 3600, "Ticks to simulate")
	metricsPath := flag.String("metrics", "", "Write run metrics as JSON to this file")
	verbose := flag.Bool("verbose", false, "Debug logging, including state transitions")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	s, err := sim.New(cfg.Config, logger)
	if err != nil {
		logger.Fatal("create simulator", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := s.Run(ctx, *ticks)
	if err != nil && !sim.IsCancelled(err) {
		logger.Fatal("run", zap.Error(err))
	}
	if err != nil {
		logger.Warn("run interrupted", zap.Error(err))
	}

	printSummary(m)

	if *metricsPath != "" {
		if err := s.ExportMetrics(*metricsPath); err != nil {
			logger.Fatal("export metrics", zap.Error(err))
		}
		logger.Info("metrics written", zap.String("path", *metricsPath))
	}
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func printSummary(m *sim.Metrics) {
	fmt.Println("=== Robot Vacuum Run ===")
	fmt.Printf("Run:          %s (seed %d)\n", m.RunID, m.Seed)
	fmt.Printf("Simulated:    %d ticks (%.1fs) in %v\n", m.Ticks, m.SimulatedSeconds, m.EndTime.Sub(m.StartTime))
	fmt.Printf("Coverage:     %.1f%% (%d / %d tiles)\n", m.Coverage, m.CleanedTiles, m.FreeTiles)
	fmt.Printf("Battery:      %.1f%%, %d recharges\n", m.Battery, m.Recharges)
	fmt.Printf("Collisions:   %d\n", m.Collisions)
	fmt.Printf("Stuck events: %d\n", m.StuckEvents)
	fmt.Printf("Wall follow:  %d ticks\n", m.WallFollowTicks)
	fmt.Printf("States:       exploring=%d cleaning=%d returning=%d stuck=%d\n",
		m.StateTicks["exploring"], m.StateTicks["cleaning"], m.StateTicks["returning"], m.StateTicks["stuck"])
}
