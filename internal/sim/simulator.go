// Package sim runs the vacuum in a generated room.
//
// A Simulator owns the current room, the robot and its trail, and collects
// run metrics. It is driven one tick at a time by the GUI frame loop or in
// bulk by Run for headless runs and benchmarks.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/robot"
	"github.com/elektrokombinacija/robovac/internal/room"
)

// Config configures the simulation.
type Config struct {
	// Random seed for rooms and robot decisions
	Seed int64 `yaml:"seed"`

	// Ticks per simulated second
	TickRate int `yaml:"tick_rate"`

	// Positions kept in the trail
	TrailLength int `yaml:"trail_length"`

	// Ticks between progress log lines during Run (0 = quiet)
	ProgressEvery int `yaml:"progress_every"`

	Room  room.Config  `yaml:"room"`
	Robot robot.Config `yaml:"robot"`
}

// DefaultConfig returns default simulation configuration
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		TickRate:      60,
		TrailLength:   500,
		ProgressEvery: 600, // 10 simulated seconds
		Room:          room.DefaultConfig(),
		Robot:         robot.DefaultConfig(),
	}
}

// Validate checks the simulation and nested room and robot sections.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.TrailLength < 0 {
		return fmt.Errorf("trail_length must be non-negative, got %d", c.TrailLength)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be non-negative, got %d", c.ProgressEvery)
	}
	if err := c.Room.Validate(); err != nil {
		return fmt.Errorf("room: %w", err)
	}
	if err := c.Robot.Validate(); err != nil {
		return fmt.Errorf("robot: %w", err)
	}
	return nil
}

// Metrics collects run statistics. Robot counters cover the current
// episode; Ticks, Rooms, Resets and Transitions cover the whole run.
type Metrics struct {
	RunID string `json:"run_id"`
	Seed  int64  `json:"seed"`

	// Timing
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Ticks            int       `json:"ticks"`
	SimulatedSeconds float64   `json:"simulated_seconds"`

	// Episodes
	Rooms  int `json:"rooms"`
	Resets int `json:"resets"`

	// Coverage
	FreeTiles    int     `json:"free_tiles"`
	CleanedTiles int     `json:"cleaned_tiles"`
	Coverage     float64 `json:"coverage_percent"`

	// Robot
	Battery         float64        `json:"battery"`
	Collisions      int            `json:"collisions"`
	StuckEvents     int            `json:"stuck_events"`
	WallFollowTicks int            `json:"wall_follow_ticks"`
	Recharges       int            `json:"recharges"`
	StateTicks      map[string]int `json:"state_ticks"`
	Transitions     int            `json:"transitions"`
}

// Simulator runs a single robot in a generated room.
type Simulator struct {
	mu sync.Mutex

	config Config
	logger *zap.Logger

	gen   *room.Generator
	grid  *core.Grid
	robot *robot.Robot

	// State
	tick  int        // Ticks since the last new room or reset
	trail []core.Pos // Oldest first

	// Metrics
	runID       string
	startTime   time.Time
	endTime     time.Time
	ticks       int
	rooms       int
	resets      int
	transitions int
}

// New creates a simulator with a freshly generated room. A nil logger
// disables logging.
func New(config Config, logger *zap.Logger) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	master := rand.New(rand.NewSource(config.Seed))
	gen, err := room.NewGenerator(config.Room, rand.New(rand.NewSource(master.Int63())))
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		config: config,
		logger: logger,
		gen:    gen,
		trail:  make([]core.Pos, 0, config.TrailLength+1),
		runID:  uuid.NewString(),
	}

	grid, start, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate room: %w", err)
	}
	s.grid = grid
	s.rooms = 1

	s.robot, err = robot.New(start, config.Robot,
		robot.WithRand(rand.New(rand.NewSource(master.Int63()))),
		robot.WithTransitionHook(s.onTransition),
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("room generated",
		zap.String("run_id", s.runID),
		zap.Int64("seed", config.Seed),
		zap.Int("free_tiles", grid.FreeCells()),
		zap.Float64("start_x", start.X),
		zap.Float64("start_y", start.Y),
	)
	return s, nil
}

// onTransition is called by the robot, always under s.mu.
func (s *Simulator) onTransition(from, to robot.State) {
	s.transitions++
	s.logger.Debug("state transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("tick", s.tick),
		zap.Float64("battery", s.robot.Battery()),
	)
}

// Step advances the simulation by one tick.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step()
}

func (s *Simulator) step() {
	s.tick++
	s.ticks++

	s.robot.Update(s.grid)

	if s.config.TrailLength == 0 {
		return
	}
	p := s.robot.Position()
	s.trail = append(s.trail, core.Pos{X: math.Round(p.X), Y: math.Round(p.Y)})
	if len(s.trail) > s.config.TrailLength {
		copy(s.trail, s.trail[1:])
		s.trail = s.trail[:s.config.TrailLength]
	}
}

// NewRoom replaces the room and restarts the robot in it.
func (s *Simulator) NewRoom() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, start, err := s.gen.Generate()
	if err != nil {
		return fmt.Errorf("generate room: %w", err)
	}
	s.grid = grid
	s.rooms++
	s.restart(start)

	s.logger.Info("room generated",
		zap.Int("room", s.rooms),
		zap.Int("free_tiles", grid.FreeCells()),
		zap.Float64("start_x", start.X),
		zap.Float64("start_y", start.Y),
	)
	return nil
}

// ResetRobot restarts the robot at a new start position in the current room.
func (s *Simulator) ResetRobot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, err := s.gen.StartPosition(s.grid)
	if err != nil {
		return fmt.Errorf("pick start: %w", err)
	}
	s.resets++
	s.restart(start)

	s.logger.Info("robot reset",
		zap.Float64("start_x", start.X),
		zap.Float64("start_y", start.Y),
	)
	return nil
}

func (s *Simulator) restart(start core.Pos) {
	s.robot.Reset(start.X, start.Y)
	s.tick = 0
	s.trail = s.trail[:0]
}

// Run executes ticks steps, stopping early when ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, ticks int) (*Metrics, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", ticks)
	}

	s.mu.Lock()
	s.startTime = time.Now()
	s.mu.Unlock()

	var runErr error
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("run stopped after %d ticks: %w", i, err)
			break
		}

		s.Step()

		// Periodic progress report
		if every := s.config.ProgressEvery; every > 0 && (i+1)%every == 0 {
			m := s.Metrics()
			s.logger.Info("progress",
				zap.Int("ticks", m.Ticks),
				zap.Float64("coverage", m.Coverage),
				zap.Float64("battery", m.Battery),
				zap.Int("collisions", m.Collisions),
			)
		}
	}

	s.mu.Lock()
	s.endTime = time.Now()
	s.mu.Unlock()

	m := s.Metrics()
	return &m, runErr
}

// Metrics returns current simulation metrics
func (s *Simulator) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.robot.Stats()
	status := s.robot.Status()
	stateTicks := make(map[string]int, robot.NumStates)
	for st := robot.State(0); st < robot.NumStates; st++ {
		stateTicks[st.String()] = stats.StateTicks[st]
	}

	return Metrics{
		RunID:            s.runID,
		Seed:             s.config.Seed,
		StartTime:        s.startTime,
		EndTime:          s.endTime,
		Ticks:            s.ticks,
		SimulatedSeconds: float64(s.ticks) / float64(s.config.TickRate),
		Rooms:            s.rooms,
		Resets:           s.resets,
		FreeTiles:        s.grid.FreeCells(),
		CleanedTiles:     status.CleanedTiles,
		Coverage:         CoveragePercent(status.CleanedTiles, s.grid.FreeCells()),
		Battery:          status.Battery,
		Collisions:       stats.Collisions,
		StuckEvents:      stats.StuckEvents,
		WallFollowTicks:  stats.WallFollowTicks,
		Recharges:        stats.Recharges,
		StateTicks:       stateTicks,
		Transitions:      s.transitions,
	}
}

// ExportMetrics writes metrics to a JSON file
func (s *Simulator) ExportMetrics(path string) error {
	data, err := json.MarshalIndent(s.Metrics(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Config returns the simulation configuration.
func (s *Simulator) Config() Config { return s.config }

// CoveragePercent returns cleaned tiles as a share of free tiles, capped at
// 100. Marking sweeps the eight neighbours of the robot's cell, walls and
// furniture included, so the raw ratio can overshoot.
func CoveragePercent(cleaned, free int) float64 {
	if free <= 0 {
		return 0
	}
	return math.Min(100, float64(cleaned)/float64(free)*100)
}

// IsCancelled reports whether a Run error came from context cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
