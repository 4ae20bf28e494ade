package sim

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/robot"
)

// Snapshot is a consistent copy of everything the renderer draws. Grid is
// shared, not copied; grids are never modified after generation.
type Snapshot struct {
	Tick       int
	TickRate   int
	Grid       *core.Grid
	Status     robot.Status
	Target     float64
	Dock       core.Pos
	Sweep      []float64 // One reading per bucket, bucket 0 at angle zero
	SweepRange float64
	Visited    []core.Cell
	Trail      []core.Pos // Oldest first
	FreeTiles  int
	Coverage   float64 // Percent
	Radius     float64
}

// Snapshot captures the current simulation state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cov := s.robot.Coverage()
	visited := make([]core.Cell, 0, cov.Len())
	cov.Each(func(c core.Cell) { visited = append(visited, c) })

	trail := make([]core.Pos, len(s.trail))
	copy(trail, s.trail)

	status := s.robot.Status()
	return Snapshot{
		Tick:       s.tick,
		TickRate:   s.config.TickRate,
		Grid:       s.grid,
		Status:     status,
		Target:     s.robot.Target(),
		Dock:       s.robot.Dock(),
		Sweep:      s.robot.Sweep().Distances(),
		SweepRange: s.robot.Sweep().MaxRange(),
		Visited:    visited,
		Trail:      trail,
		FreeTiles:  s.grid.FreeCells(),
		Coverage:   CoveragePercent(status.CleanedTiles, s.grid.FreeCells()),
		Radius:     s.config.Robot.Radius,
	}
}

// Elapsed returns the simulated time since the episode started.
func (s Snapshot) Elapsed() time.Duration {
	if s.TickRate <= 0 {
		return 0
	}
	return time.Duration(s.Tick) * time.Second / time.Duration(s.TickRate)
}

// Clock formats the simulated time as m:ss.
func (s Snapshot) Clock() string {
	secs := int(s.Elapsed() / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
