// Package core defines the room model shared by the simulator and renderer.
package core

import "math"

// CellKind classifies an occupancy grid cell.
type CellKind uint8

const (
	Free     CellKind = iota // Open floor
	Obstacle                 // Furniture and clutter
	Wall                     // Outer walls and walled-off corners
)

func (k CellKind) String() string {
	return [...]string{"Free", "Obstacle", "Wall"}[k]
}

// Blocked reports whether the robot can not enter a cell of this kind.
func (k CellKind) Blocked() bool {
	return k != Free
}

// Pos is a continuous position in simulation-local units (pixels at zoom 1).
type Pos struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two positions.
func (p Pos) Dist(q Pos) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Advance returns the position reached by moving dist along angle.
func (p Pos) Advance(angle, dist float64) Pos {
	return Pos{
		X: p.X + math.Cos(angle)*dist,
		Y: p.Y + math.Sin(angle)*dist,
	}
}

// Cell is a grid coordinate (column X, row Y).
type Cell struct {
	X, Y int
}

// Offset returns the cell dx columns and dy rows away.
func (c Cell) Offset(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}
