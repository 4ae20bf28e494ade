package robot

import (
	"math"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Sweep is a simulated rotating rangefinder. It holds one distance per
// angular bucket and refreshes a contiguous slice of buckets per tick, so a
// full revolution takes buckets/slice ticks.
type Sweep struct {
	distances []float64
	slice     int
	cursor    int     // Bucket under the rotating head
	minRange  float64 // First sample distance from the robot centre
	maxRange  float64
}

// NewSweep creates a sweep with every bucket reading maxRange.
func NewSweep(buckets, slice int, minRange, maxRange float64) *Sweep {
	s := &Sweep{
		distances: make([]float64, buckets),
		slice:     slice,
		minRange:  minRange,
		maxRange:  maxRange,
	}
	s.Reset()
	return s
}

// Reset parks the head at angle zero and clears every reading to "nothing
// in range".
func (s *Sweep) Reset() {
	s.cursor = 0
	for i := range s.distances {
		s.distances[i] = s.maxRange
	}
}

// Update rotates the head by one slice and re-measures the buckets it now
// covers from origin.
func (s *Sweep) Update(origin core.Pos, m Map) {
	n := len(s.distances)
	s.cursor = (s.cursor + s.slice) % n

	for i := 0; i < s.slice; i++ {
		idx := (s.cursor + i) % n
		s.distances[idx] = s.cast(origin, s.BucketAngle(idx), m)
	}
}

// cast ray-marches in unit steps and returns the distance of the first
// sample that leaves the grid or hits a blocked cell.
func (s *Sweep) cast(origin core.Pos, angle float64, m Map) float64 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	for d := s.minRange; d < s.maxRange; d++ {
		x := origin.X + cos*d
		y := origin.Y + sin*d
		if !m.InBounds(x, y) || !m.IsValidPosition(x, y) {
			return d
		}
	}
	return s.maxRange
}

// BucketAngle returns the bearing of a bucket in radians.
func (s *Sweep) BucketAngle(idx int) float64 {
	return float64(idx) / float64(len(s.distances)) * 2 * math.Pi
}

// Rotation returns the head angle in [0, 2π).
func (s *Sweep) Rotation() float64 {
	return s.BucketAngle(s.cursor)
}

// Len returns the number of buckets.
func (s *Sweep) Len() int { return len(s.distances) }

// MaxRange returns the reading that means "no obstacle in range".
func (s *Sweep) MaxRange() float64 { return s.maxRange }

// At returns the reading of one bucket.
func (s *Sweep) At(idx int) float64 { return s.distances[idx] }

// Distances returns a copy of all readings.
func (s *Sweep) Distances() []float64 {
	out := make([]float64, len(s.distances))
	copy(out, s.distances)
	return out
}
