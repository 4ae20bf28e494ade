// Package robot implements the vacuum's perception and decision loop: the
// rotating range sweep, the front proximity probe, stuck detection, the
// behavioural state machine and motion integration.
package robot

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Map is the read-only view of the room the robot senses and moves in.
// *core.Grid satisfies it.
type Map interface {
	IsValidPosition(x, y float64) bool
	InBounds(x, y float64) bool
	CellAt(x, y float64) core.Cell
	CellSize() float64
}

// Status is a read-only snapshot of the robot for display.
type Status struct {
	State         State
	Battery       float64 // Percent
	CleanedTiles  int
	Position      core.Pos
	Heading       float64 // Radians in [0, 2π)
	SweepRotation float64 // Radians in [0, 2π)
	WallFollowing bool
}

// Stats counts events since the last reset.
type Stats struct {
	Ticks           int
	Collisions      int // Rejected moves
	StuckEvents     int // Entries into Stuck
	WallFollowTicks int
	Recharges       int
	StateTicks      [NumStates]int
}

// Robot is an autonomous vacuum. It is not safe for concurrent use.
type Robot struct {
	cfg          Config
	rng          *rand.Rand
	onTransition TransitionFunc

	pos     core.Pos
	dock    core.Pos // Start position of the current episode
	heading float64  // [0, 2π)
	target  float64  // (−π, π]
	state   State
	battery float64

	history  *StuckDetector
	coverage *Coverage
	sweep    *Sweep

	wallFollowing bool
	wallDir       int // +1 turns clockwise in screen space, -1 counter-clockwise
	turnTimer     int // Ticks until the next random heading change may happen
	stuckTimer    int
	cleanTimer    int
	spotCooldown  int

	stats Stats
}

// Option customises a Robot at construction.
type Option func(*Robot)

// WithRand injects the random source used for every behavioural decision.
func WithRand(rng *rand.Rand) Option {
	return func(r *Robot) { r.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithTransitionHook registers a callback for state changes.
func WithTransitionHook(fn TransitionFunc) Option {
	return func(r *Robot) { r.onTransition = fn }
}

// New creates a robot at start with a random heading.
func New(start core.Pos, cfg Config, opts ...Option) (*Robot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("robot config: %w", err)
	}

	r := &Robot{
		cfg:      cfg,
		history:  NewStuckDetector(cfg.HistorySize, cfg.StuckWindow, cfg.StuckThreshold),
		coverage: NewCoverage(),
		sweep:    NewSweep(cfg.SweepBuckets, cfg.SweepSlice, cfg.Radius+2, cfg.SweepRange),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	r.Reset(start.X, start.Y)
	return r, nil
}

// Reset reinitialises the robot at (x, y): fresh random heading, full
// battery, Exploring, and empty history, coverage and sweep.
func (r *Robot) Reset(x, y float64) {
	r.pos = core.Pos{X: x, Y: y}
	r.dock = r.pos
	r.heading = r.rng.Float64() * 2 * math.Pi
	r.target = shortestAngle(r.heading)
	r.state = Exploring
	r.battery = 100

	r.history.Reset()
	r.coverage.Reset()
	r.sweep.Reset()

	r.wallFollowing = false
	r.wallDir = 1
	r.turnTimer = 0
	r.stuckTimer = 0
	r.cleanTimer = 0
	r.spotCooldown = r.cfg.SpotCooldown

	r.stats = Stats{}
}

// SetHeading points the robot (and its target) at angle.
func (r *Robot) SetHeading(angle float64) {
	r.heading = normalizeAngle(angle)
	r.target = shortestAngle(angle)
}

// Update advances the robot by one tick: battery drain, stuck check,
// behaviour decision, motion, sweep refresh and coverage marking.
func (r *Robot) Update(m Map) {
	r.stats.Ticks++
	r.battery = math.Max(0, r.battery-r.cfg.BatteryDrain)
	if r.spotCooldown > 0 {
		r.spotCooldown--
	}

	r.history.Push(r.pos)
	r.checkStuck()

	r.decide(m)
	r.move(m)

	r.sweep.Update(r.pos, m)
	r.coverage.MarkAround(m.CellAt(r.pos.X, r.pos.Y))

	r.stats.StateTicks[r.state]++
}

// checkStuck forces the Stuck state when recent travel is below threshold.
// It re-arms the countdown even if the robot is already stuck.
func (r *Robot) checkStuck() {
	if !r.history.Immobile() {
		return
	}
	r.stuckTimer = r.cfg.StuckTicks
	if r.state != Stuck {
		r.stats.StuckEvents++
	}
	r.setState(Stuck)
}

func (r *Robot) setState(to State) {
	from := r.state
	if from == to {
		return
	}
	r.state = to

	if from == Cleaning {
		r.spotCooldown = r.cfg.SpotCooldown
	}
	if to == Cleaning {
		r.cleanTimer = r.cfg.CleaningTicks
	}

	if r.onTransition != nil {
		r.onTransition(from, to)
	}
}

// setTarget stores a desired heading, wrapped into (−π, π].
func (r *Robot) setTarget(angle float64) {
	r.target = shortestAngle(angle)
}

// Status returns a snapshot for display.
func (r *Robot) Status() Status {
	return Status{
		State:         r.state,
		Battery:       r.battery,
		CleanedTiles:  r.coverage.Len(),
		Position:      r.pos,
		Heading:       r.heading,
		SweepRotation: r.sweep.Rotation(),
		WallFollowing: r.wallFollowing,
	}
}

// State returns the current behavioural state.
func (r *Robot) State() State { return r.state }

// Position returns the robot centre.
func (r *Robot) Position() core.Pos { return r.pos }

// Heading returns the current heading in [0, 2π).
func (r *Robot) Heading() float64 { return r.heading }

// Target returns the desired heading in (−π, π].
func (r *Robot) Target() float64 { return r.target }

// Dock returns the position the robot returns to for recharging.
func (r *Robot) Dock() core.Pos { return r.dock }

// Battery returns the charge level in percent.
func (r *Robot) Battery() float64 { return r.battery }

// Sweep exposes the range sensor. Callers must treat it as read-only.
func (r *Robot) Sweep() *Sweep { return r.sweep }

// Coverage exposes the visited cell set. Callers must treat it as read-only.
func (r *Robot) Coverage() *Coverage { return r.coverage }

// Stats returns event counters since the last reset.
func (r *Robot) Stats() Stats { return r.stats }

// Config returns the robot parameters.
func (r *Robot) Config() Config { return r.cfg }
