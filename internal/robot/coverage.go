package robot

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Coverage is the set of grid cells the robot has swept. It only grows
// until Reset.
type Coverage struct {
	cells mapset.Set[core.Cell]
}

// NewCoverage creates an empty coverage set.
func NewCoverage() *Coverage {
	return &Coverage{cells: mapset.New[core.Cell]()}
}

// MarkAround marks a cell and its eight neighbours and returns how many of
// them were new.
func (c *Coverage) MarkAround(center core.Cell) int {
	added := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cell := center.Offset(dx, dy)
			if !c.cells.Has(cell) {
				c.cells.Put(cell)
				added++
			}
		}
	}
	return added
}

// Has reports whether a cell has been visited.
func (c *Coverage) Has(cell core.Cell) bool {
	return c.cells.Has(cell)
}

// Len returns the number of visited cells.
func (c *Coverage) Len() int {
	return c.cells.Size()
}

// Each calls fn for every visited cell, in no particular order.
func (c *Coverage) Each(fn func(core.Cell)) {
	c.cells.Each(fn)
}

// LocalRatio returns the visited fraction of the square neighbourhood of
// the given radius around center.
func (c *Coverage) LocalRatio(center core.Cell, radius int) float64 {
	side := 2*radius + 1
	visited := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if c.cells.Has(center.Offset(dx, dy)) {
				visited++
			}
		}
	}
	return float64(visited) / float64(side*side)
}

// Reset forgets every visited cell.
func (c *Coverage) Reset() {
	c.cells = mapset.New[core.Cell]()
}
