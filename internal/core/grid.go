package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned when a grid can not be built from its parameters.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is an occupancy grid. It is immutable once built: the room generator
// produces a new Grid instead of editing one in place.
type Grid struct {
	cells    []CellKind // Row-major, len = width*height
	width    int        // Columns
	height   int        // Rows
	cellSize float64    // World units per cell side
	free     int        // Cached count of Free cells
}

// NewGrid builds a width x height grid. cells is row-major and copied; a nil
// slice yields an all-free grid.
func NewGrid(width, height int, cellSize float64, cells []CellKind) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidGrid, cellSize)
	}

	g := &Grid{
		cells:    make([]CellKind, width*height),
		width:    width,
		height:   height,
		cellSize: cellSize,
	}
	if cells != nil {
		if len(cells) != width*height {
			return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGrid, len(cells), width, height)
		}
		copy(g.cells, cells)
	}

	for _, k := range g.cells {
		if k == Free {
			g.free++
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the side length of a cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Size returns the world extent of the grid.
func (g *Grid) Size() (w, h float64) {
	return float64(g.width) * g.cellSize, float64(g.height) * g.cellSize
}

// FreeCells returns how many cells are open floor.
func (g *Grid) FreeCells() int { return g.free }

// CellAt maps a world position to the cell containing it.
func (g *Grid) CellAt(x, y float64) Cell {
	return Cell{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Center returns the world position of a cell's centre.
func (g *Grid) Center(c Cell) Pos {
	return Pos{
		X: (float64(c.X) + 0.5) * g.cellSize,
		Y: (float64(c.Y) + 0.5) * g.cellSize,
	}
}

// Contains reports whether the cell lies inside the grid.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Kind returns the category of a cell. Cells outside the grid read as Wall.
func (g *Grid) Kind(c Cell) CellKind {
	if !g.Contains(c) {
		return Wall
	}
	return g.cells[c.Y*g.width+c.X]
}

// InBounds reports whether a world position lies inside the grid.
func (g *Grid) InBounds(x, y float64) bool {
	return g.Contains(g.CellAt(x, y))
}

// IsValidPosition reports whether a world position maps to an in-bounds,
// free cell.
func (g *Grid) IsValidPosition(x, y float64) bool {
	return g.Kind(g.CellAt(x, y)) == Free
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c Cell, k CellKind)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Cell{X: x, Y: y}, g.cells[y*g.width+x])
		}
	}
}
