package robot

import (
	"gonum.org/v1/gonum/floats"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// StuckDetector keeps a bounded trail of recent positions and flags the
// robot as immobile when it has barely travelled over the latest window.
type StuckDetector struct {
	positions []core.Pos // Oldest first, at most capacity entries
	steps     []float64  // Scratch for per-step displacement
	capacity  int
	window    int
	threshold float64
}

// NewStuckDetector creates a detector holding capacity positions that
// inspects the last window of them.
func NewStuckDetector(capacity, window int, threshold float64) *StuckDetector {
	return &StuckDetector{
		positions: make([]core.Pos, 0, capacity+1),
		steps:     make([]float64, window-1),
		capacity:  capacity,
		window:    window,
		threshold: threshold,
	}
}

// Push records a position, evicting the oldest one when full.
func (d *StuckDetector) Push(p core.Pos) {
	d.positions = append(d.positions, p)
	if len(d.positions) > d.capacity {
		copy(d.positions, d.positions[1:])
		d.positions = d.positions[:d.capacity]
	}
}

// Len returns the number of stored positions.
func (d *StuckDetector) Len() int { return len(d.positions) }

// Displacement returns the distance travelled across the latest window, or
// -1 while fewer than window samples exist.
func (d *StuckDetector) Displacement() float64 {
	if len(d.positions) < d.window {
		return -1
	}
	recent := d.positions[len(d.positions)-d.window:]
	for i := 1; i < len(recent); i++ {
		d.steps[i-1] = recent[i-1].Dist(recent[i])
	}
	return floats.Sum(d.steps)
}

// Immobile reports whether the robot travelled less than the threshold over
// the latest window.
func (d *StuckDetector) Immobile() bool {
	moved := d.Displacement()
	return moved >= 0 && moved < d.threshold
}

// Reset forgets all positions.
func (d *StuckDetector) Reset() {
	d.positions = d.positions[:0]
}
