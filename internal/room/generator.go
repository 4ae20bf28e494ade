// Package room generates random floor plans: an outer wall, scattered
// clutter, an optional walled-off corner that makes the room L-shaped, and a
// few larger furniture blocks.
package room

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// ErrNoStart is returned when a room has no free cell to start from.
var ErrNoStart = errors.New("no free start position")

// startAttempts is how many random cells are tried before scanning.
const startAttempts = 100

// Config sizes the generated rooms.
type Config struct {
	Width        int     `yaml:"width"`         // Columns, including the outer wall
	Height       int     `yaml:"height"`        // Rows, including the outer wall
	CellSize     float64 `yaml:"cell_size"`     // World units per cell
	LShapeChance float64 `yaml:"l_shape_chance"` // Probability of walling off a corner
}

// DefaultConfig returns a 1000x700 unit room of 20-unit cells.
func DefaultConfig() Config {
	return Config{
		Width:        50,
		Height:       35,
		CellSize:     20,
		LShapeChance: 0.3,
	}
}

// Validate checks that rooms of this size leave space for furniture.
func (c Config) Validate() error {
	if c.Width < 12 || c.Height < 12 {
		return fmt.Errorf("room must be at least 12x12 cells, got %dx%d", c.Width, c.Height)
	}
	if !(c.CellSize > 0) {
		return fmt.Errorf("cell_size must be positive, got %v", c.CellSize)
	}
	if c.LShapeChance < 0 || c.LShapeChance > 1 {
		return fmt.Errorf("l_shape_chance must be in [0, 1], got %v", c.LShapeChance)
	}
	return nil
}

// Generator builds rooms from a private random source.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a generator. A nil rng is replaced by one seeded
// with zero.
func NewGenerator(cfg Config, rng *rand.Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("room config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &Generator{cfg: cfg, rng: rng}, nil
}

// Config returns the generator's room parameters.
func (g *Generator) Config() Config { return g.cfg }

// Generate builds a new room and picks a start position in it.
func (g *Generator) Generate() (*core.Grid, core.Pos, error) {
	w, h := g.cfg.Width, g.cfg.Height
	cells := make([]core.CellKind, w*h)

	g.addOuterWalls(cells)
	g.addClutter(cells)
	if g.rng.Float64() < g.cfg.LShapeChance {
		g.addCornerBlock(cells)
	}
	g.addFurniture(cells)

	grid, err := core.NewGrid(w, h, g.cfg.CellSize, cells)
	if err != nil {
		return nil, core.Pos{}, err
	}
	start, err := g.StartPosition(grid)
	if err != nil {
		return nil, core.Pos{}, err
	}
	return grid, start, nil
}

// StartPosition picks a free cell whose four neighbours are also free and
// returns its centre. Random picks come first; a row-major scan follows,
// and as a last resort any free cell is accepted.
func (g *Generator) StartPosition(grid *core.Grid) (core.Pos, error) {
	w, h := grid.Width(), grid.Height()
	if w >= 5 && h >= 5 {
		for i := 0; i < startAttempts; i++ {
			c := core.Cell{X: g.randInt(2, w-3), Y: g.randInt(2, h-3)}
			if roomy(grid, c) {
				return grid.Center(c), nil
			}
		}
	}

	var fallback *core.Cell
	var found *core.Cell
	grid.Each(func(c core.Cell, k core.CellKind) {
		if found != nil || k != core.Free {
			return
		}
		if roomy(grid, c) {
			found = &c
			return
		}
		if fallback == nil {
			fallback = &c
		}
	})

	switch {
	case found != nil:
		return grid.Center(*found), nil
	case fallback != nil:
		return grid.Center(*fallback), nil
	}
	return core.Pos{}, ErrNoStart
}

// roomy reports whether c and its four neighbours are free.
func roomy(grid *core.Grid, c core.Cell) bool {
	for _, n := range []core.Cell{c, c.Offset(0, -1), c.Offset(0, 1), c.Offset(-1, 0), c.Offset(1, 0)} {
		if grid.Kind(n) != core.Free {
			return false
		}
	}
	return true
}

func (g *Generator) addOuterWalls(cells []core.CellKind) {
	w, h := g.cfg.Width, g.cfg.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				cells[y*w+x] = core.Wall
			}
		}
	}
}

// addClutter scatters 5-15 small square obstacle clusters.
func (g *Generator) addClutter(cells []core.CellKind) {
	w, h := g.cfg.Width, g.cfg.Height
	n := g.randInt(5, 15)
	for i := 0; i < n; i++ {
		x := g.randInt(2, w-3)
		y := g.randInt(2, h-3)
		size := g.randInt(1, 3)
		g.fill(cells, x, y, size, size, core.Obstacle)
	}
}

// addCornerBlock walls off a random corner so the room becomes L-shaped.
func (g *Generator) addCornerBlock(cells []core.CellKind) {
	w, h := g.cfg.Width, g.cfg.Height
	corner := g.rng.Intn(4)
	bw := g.randInt(3, 8)
	bh := g.randInt(3, 8)

	// The block spans bw-1 x bh-1 cells just inside the outer wall.
	x0, y0 := 1, 1
	if corner&1 == 1 {
		x0 = w - bw
	}
	if corner&2 == 2 {
		y0 = h - bh
	}
	g.fill(cells, x0, y0, bw-1, bh-1, core.Wall)
}

// addFurniture places 2-5 rectangular blocks of 2-4 cells a side.
func (g *Generator) addFurniture(cells []core.CellKind) {
	w, h := g.cfg.Width, g.cfg.Height
	n := g.randInt(2, 5)
	for i := 0; i < n; i++ {
		fw := g.randInt(2, 4)
		fh := g.randInt(2, 4)
		x := g.randInt(3, w-fw-3)
		y := g.randInt(3, h-fh-3)
		g.fill(cells, x, y, fw, fh, core.Obstacle)
	}
}

// fill sets a rectangle, clipped to the interior of the outer wall.
func (g *Generator) fill(cells []core.CellKind, x0, y0, fw, fh int, kind core.CellKind) {
	w, h := g.cfg.Width, g.cfg.Height
	for y := y0; y < y0+fh; y++ {
		for x := x0; x < x0+fw; x++ {
			if x >= 1 && y >= 1 && x < w-1 && y < h-1 {
				cells[y*w+x] = kind
			}
		}
	}
}

// randInt returns a uniform integer in [lo, hi].
func (g *Generator) randInt(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
