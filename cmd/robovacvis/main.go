// Command robovacvis shows the vacuum simulation in a window.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/config"
	"github.com/elektrokombinacija/robovac/internal/sim"
	"github.com/elektrokombinacija/robovac/internal/vis"
)

func main() {
	configPath := flag.String("config", "robovac.yaml", "YAML config file (missing file = defaults)")
	seed := flag.Int64("seed", 0, "Random seed (0 = use config)")
	verbose := flag.Bool("verbose", false, "Debug logging, including state transitions")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if !*verbose && err == nil {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}

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

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(cfg.Window.Title),
			app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
		)

		application := vis.NewApp(s, logger)
		if err := application.Run(window); err != nil {
			logger.Fatal("window", zap.Error(err))
		}
		logger.Sync()
		os.Exit(0)
	}()
	app.Main()
}
