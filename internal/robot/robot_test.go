package robot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// openGrid creates a w x h all-free grid with 20-unit cells.
func openGrid(t *testing.T, w, h int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h, 20, nil)
	require.NoError(t, err)
	return g
}

// gridWithColumn creates a 40x30 grid whose column col is an obstacle.
func gridWithColumn(t *testing.T, col int) *core.Grid {
	t.Helper()
	const w, h = 40, 30
	cells := make([]core.CellKind, w*h)
	for y := 0; y < h; y++ {
		cells[y*w+col] = core.Obstacle
	}
	g, err := core.NewGrid(w, h, 20, cells)
	require.NoError(t, err)
	return g
}

// walledRoom creates a 40x30 room with outer walls and a few blocks.
func walledRoom(t *testing.T) *core.Grid {
	t.Helper()
	const w, h = 40, 30
	cells := make([]core.CellKind, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				cells[y*w+x] = core.Wall
			}
		}
	}
	for _, b := range []struct{ x, y, size int }{{8, 6, 3}, {25, 10, 4}, {12, 20, 2}, {30, 22, 3}} {
		for dy := 0; dy < b.size; dy++ {
			for dx := 0; dx < b.size; dx++ {
				cells[(b.y+dy)*w+b.x+dx] = core.Obstacle
			}
		}
	}
	g, err := core.NewGrid(w, h, 20, cells)
	require.NoError(t, err)
	return g
}

func newRobot(t *testing.T, x, y float64, cfg Config, opts ...Option) *Robot {
	t.Helper()
	r, err := New(core.Pos{X: x, Y: y}, cfg, append([]Option{WithSeed(7)}, opts...)...)
	require.NoError(t, err)
	return r
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"gain above one", func(c *Config) { c.AngularGain = 1.5 }},
		{"zero gain", func(c *Config) { c.AngularGain = 0 }},
		{"zero probe step", func(c *Config) { c.ProbeStep = 0 }},
		{"infinite sweep range", func(c *Config) { c.SweepRange = math.Inf(1) }},
		{"slice not dividing buckets", func(c *Config) { c.SweepSlice = 7 }},
		{"slice larger than buckets", func(c *Config) { c.SweepSlice = 720 }},
		{"history smaller than window", func(c *Config) { c.HistorySize = 10 }},
		{"window too small", func(c *Config) { c.StuckWindow = 1 }},
		{"inverted turn range", func(c *Config) { c.TurnMinTicks, c.TurnMaxTicks = 50, 10 }},
		{"low battery at 100", func(c *Config) { c.LowBattery = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())

			_, err := New(core.Pos{}, cfg)
			assert.Error(t, err)
		})
	}
}

func TestAngleWrapping(t *testing.T) {
	tests := []struct {
		in, shortest, normalized float64
	}{
		{0, 0, 0},
		{math.Pi, math.Pi, math.Pi},
		{-math.Pi, math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2, 3 * math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi, math.Pi},
		{2 * math.Pi, 0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.shortest, shortestAngle(tt.in), 1e-9, "shortestAngle(%v)", tt.in)
		assert.InDelta(t, tt.normalized, normalizeAngle(tt.in), 1e-9, "normalizeAngle(%v)", tt.in)
	}
}

func TestUpdate_OneTickOnOpenFloor(t *testing.T) {
	g := openGrid(t, 40, 30)
	r := newRobot(t, 410, 310, DefaultConfig())
	r.SetHeading(0)

	r.Update(g)

	// A random turn may have nudged the heading by at most gain*pi/3.
	pos := r.Position()
	assert.InDelta(t, 411.5, pos.X, 0.01)
	assert.InDelta(t, 310, pos.Y, 0.2)
	assert.Equal(t, Exploring, r.State())
	assert.False(t, r.Status().WallFollowing)
}

func TestProbe_ThresholdBoundary(t *testing.T) {
	// Obstacle column 21 spans x in [420, 440).
	g := gridWithColumn(t, 21)

	t.Run("exactly at threshold does not wall-follow", func(t *testing.T) {
		r := newRobot(t, 395, 310, DefaultConfig())
		r.SetHeading(0)
		require.Equal(t, 25.0, r.frontDistance(g))

		r.Update(g)
		assert.False(t, r.Status().WallFollowing)
		assert.Equal(t, Exploring, r.State())
	})

	t.Run("below threshold wall-follows", func(t *testing.T) {
		r := newRobot(t, 400, 310, DefaultConfig())
		r.SetHeading(0)
		require.Equal(t, 20.0, r.frontDistance(g))

		r.Update(g)
		assert.True(t, r.Status().WallFollowing)
		assert.InDelta(t, math.Pi/4, math.Abs(r.Target()), 1e-9)
		assert.Equal(t, 1, r.Stats().WallFollowTicks)
	})

	t.Run("clear path reports full range", func(t *testing.T) {
		r := newRobot(t, 100, 310, DefaultConfig())
		r.SetHeading(0)
		assert.Equal(t, r.cfg.ProbeRange, r.frontDistance(g))
	})
}

func TestMove_BlockedStepKeepsPosition(t *testing.T) {
	// Obstacle column 20 spans x in [400, 420).
	g := gridWithColumn(t, 20)
	r := newRobot(t, 399.5, 310, DefaultConfig())
	r.SetHeading(0)

	r.move(g)

	assert.Equal(t, core.Pos{X: 399.5, Y: 310}, r.Position())
	assert.Equal(t, 1, r.Stats().Collisions)
	// Target was 0; the bounce adds between pi/2 and pi.
	assert.GreaterOrEqual(t, r.Target(), math.Pi/2)
	assert.LessOrEqual(t, r.Target(), math.Pi)
}

func TestMove_HeadingStepBounded(t *testing.T) {
	g := openGrid(t, 40, 30)
	r := newRobot(t, 410, 310, DefaultConfig())
	bound := r.cfg.AngularGain*math.Pi + 1e-12

	for i := 0; i < 2000; i++ {
		r.pos = core.Pos{X: 410, Y: 310}
		r.setTarget(r.uniform(-10, 10))
		before := r.Heading()
		r.move(g)
		after := r.Heading()

		require.False(t, math.IsNaN(after) || math.IsInf(after, 0))
		require.LessOrEqual(t, math.Abs(shortestAngle(after-before)), bound, "iteration %d", i)
		require.GreaterOrEqual(t, after, 0.0)
		require.Less(t, after, 2*math.Pi)
	}
}

func TestUpdate_LongRunInvariants(t *testing.T) {
	g := walledRoom(t)
	r := newRobot(t, 410, 310, DefaultConfig())
	maxRange := r.Sweep().MaxRange()
	prevCovered := 0

	for tick := 0; tick < 5000; tick++ {
		before := r.Position()
		r.Update(g)
		after := r.Position()

		require.True(t, g.IsValidPosition(after.X, after.Y), "tick %d: robot at blocked %+v", tick, after)
		require.LessOrEqual(t, before.Dist(after), r.cfg.Speed+1e-9)

		for i := 0; i < r.Sweep().Len(); i++ {
			d := r.Sweep().At(i)
			require.GreaterOrEqual(t, d, 0.0)
			require.LessOrEqual(t, d, maxRange)
		}

		covered := r.Coverage().Len()
		require.GreaterOrEqual(t, covered, prevCovered, "coverage shrank at tick %d", tick)
		prevCovered = covered

		s := r.Status()
		require.False(t, math.IsNaN(s.Heading) || math.IsNaN(r.Target()))
		require.GreaterOrEqual(t, s.Battery, 0.0)
	}

	assert.Greater(t, prevCovered, 9, "robot should have left its start cell")
}

func TestCheckStuck(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("immobile history forces stuck", func(t *testing.T) {
		r := newRobot(t, 410, 310, cfg)
		for i := 0; i < cfg.StuckWindow; i++ {
			r.history.Push(core.Pos{X: 410 + float64(i%2)*0.5, Y: 310})
		}
		r.checkStuck()

		assert.Equal(t, Stuck, r.State())
		assert.Equal(t, cfg.StuckTicks, r.stuckTimer)
		assert.Equal(t, 1, r.Stats().StuckEvents)
	})

	t.Run("moving history stays exploring", func(t *testing.T) {
		r := newRobot(t, 410, 310, cfg)
		for i := 0; i < cfg.StuckWindow; i++ {
			r.history.Push(core.Pos{X: 410 + float64(i), Y: 310}) // 29 units
		}
		r.checkStuck()

		assert.Equal(t, Exploring, r.State())
		assert.Zero(t, r.stuckTimer)
	})

	t.Run("re-triggers mid-stuck", func(t *testing.T) {
		r := newRobot(t, 410, 310, cfg)
		for i := 0; i < cfg.StuckWindow; i++ {
			r.history.Push(core.Pos{X: 410, Y: 310})
		}
		r.checkStuck()
		r.stuckTimer = 5
		r.checkStuck()

		assert.Equal(t, cfg.StuckTicks, r.stuckTimer)
		assert.Equal(t, 1, r.Stats().StuckEvents)
	})
}

func TestRecover_ReturnsToExploring(t *testing.T) {
	var transitions [][2]State
	r := newRobot(t, 410, 310, DefaultConfig(), WithTransitionHook(func(from, to State) {
		transitions = append(transitions, [2]State{from, to})
	}))
	r.setState(Stuck)
	r.stuckTimer = 3

	r.recover()
	r.recover()
	assert.Equal(t, Stuck, r.State())
	r.recover()
	assert.Equal(t, Exploring, r.State())

	assert.Equal(t, [][2]State{{Exploring, Stuck}, {Stuck, Exploring}}, transitions)
}

func TestReset(t *testing.T) {
	g := walledRoom(t)
	r := newRobot(t, 410, 310, DefaultConfig())
	for i := 0; i < 200; i++ {
		r.Update(g)
	}
	require.NotZero(t, r.Coverage().Len())

	r.Reset(130, 150)

	s := r.Status()
	assert.Equal(t, core.Pos{X: 130, Y: 150}, s.Position)
	assert.Equal(t, core.Pos{X: 130, Y: 150}, r.Dock())
	assert.Equal(t, Exploring, s.State)
	assert.Equal(t, 100.0, s.Battery)
	assert.Zero(t, s.CleanedTiles)
	assert.Zero(t, r.history.Len())
	assert.Equal(t, Stats{}, r.Stats())
	assert.GreaterOrEqual(t, s.Heading, 0.0)
	assert.Less(t, s.Heading, 2*math.Pi)
	assert.Zero(t, s.SweepRotation)
	for _, d := range r.Sweep().Distances() {
		assert.Equal(t, r.Sweep().MaxRange(), d)
	}
}

func TestBattery(t *testing.T) {
	g := openGrid(t, 40, 30)

	t.Run("floors at zero", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LowBattery = 0
		cfg.BatteryDrain = 60
		r := newRobot(t, 410, 310, cfg)
		r.Update(g)
		r.Update(g)
		assert.Equal(t, 0.0, r.Battery())
		assert.Equal(t, Exploring, r.State())
	})

	t.Run("low battery returns and recharges", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LowBattery = 50
		cfg.BatteryDrain = 30

		var transitions [][2]State
		r := newRobot(t, 410, 310, cfg, WithTransitionHook(func(from, to State) {
			transitions = append(transitions, [2]State{from, to})
		}))

		r.Update(g) // 70
		r.Update(g) // 40, turns for home
		assert.Equal(t, Returning, r.State())

		r.Update(g) // still within a cell of the dock
		assert.Equal(t, Exploring, r.State())
		assert.Equal(t, 1, r.Stats().Recharges)
		assert.Equal(t, 100.0, r.Battery())

		assert.Equal(t, [][2]State{{Exploring, Returning}, {Returning, Exploring}}, transitions)
	})

	t.Run("returning steers at the dock", func(t *testing.T) {
		r := newRobot(t, 410, 310, DefaultConfig())
		r.setState(Returning)
		r.pos = core.Pos{X: 210, Y: 310}

		r.returnToDock(g)
		assert.InDelta(t, 0, r.Target(), 1e-9)
	})
}

func TestSpotCleaning(t *testing.T) {
	g := openGrid(t, 40, 30)
	cfg := DefaultConfig()
	cfg.SpotCooldown = 0
	cfg.CleaningTicks = 5

	var transitions [][2]State
	r := newRobot(t, 410, 310, cfg, WithTransitionHook(func(from, to State) {
		transitions = append(transitions, [2]State{from, to})
	}))
	r.SetHeading(0)

	r.Update(g)
	require.Equal(t, Cleaning, r.State())

	for i := 0; i < cfg.CleaningTicks; i++ {
		r.Update(g)
	}
	require.GreaterOrEqual(t, len(transitions), 2)
	assert.Equal(t, [2]State{Exploring, Cleaning}, transitions[0])
	assert.Equal(t, [2]State{Cleaning, Exploring}, transitions[1])
	assert.Equal(t, cfg.CleaningTicks+1, r.Stats().StateTicks[Cleaning]+r.Stats().StateTicks[Exploring])
}

func TestSpotCleaning_HeldOffByCooldown(t *testing.T) {
	g := openGrid(t, 40, 30)
	r := newRobot(t, 410, 310, DefaultConfig())

	for i := 0; i < 100; i++ {
		r.Update(g)
		require.NotEqual(t, Cleaning, r.State(), "tick %d", i)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "exploring", Exploring.String())
	assert.Equal(t, "cleaning", Cleaning.String())
	assert.Equal(t, "returning", Returning.String())
	assert.Equal(t, "stuck", Stuck.String())
	assert.Equal(t, "unknown", State(42).String())
}
