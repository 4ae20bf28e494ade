package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/core"
)

func countSentinels(s *Sweep) int {
	n := 0
	for _, d := range s.distances {
		if d < 0 {
			n++
		}
	}
	return n
}

func TestSweep_FullRefreshInTwelveTicks(t *testing.T) {
	g := openGrid(t, 40, 30)
	s := NewSweep(360, 30, 10, 100)
	for i := range s.distances {
		s.distances[i] = -1
	}
	origin := core.Pos{X: 410, Y: 310}

	for tick := 1; tick <= 12; tick++ {
		s.Update(origin, g)
		require.Equal(t, 360-30*tick, countSentinels(s), "after tick %d", tick)
	}

	assert.Zero(t, s.Rotation(), "head back at zero after a full turn")
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, 100.0, s.At(i), "bucket %d on an open floor", i)
	}
}

func TestSweep_Readings(t *testing.T) {
	// Obstacle column 25 spans x in [500, 520).
	g := gridWithColumn(t, 25)

	tests := []struct {
		name   string
		origin core.Pos
		bucket int
		want   float64
	}{
		{"east hits obstacle", core.Pos{X: 410, Y: 310}, 0, 90},
		{"west is clear", core.Pos{X: 410, Y: 310}, 180, 100},
		{"south is clear", core.Pos{X: 410, Y: 310}, 90, 100},
		{"west leaves the grid", core.Pos{X: 30, Y: 310}, 180, 31},
		{"north leaves the grid", core.Pos{X: 410, Y: 40}, 270, 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSweep(360, 30, 10, 100)
			for i := 0; i < 12; i++ {
				s.Update(tt.origin, g)
			}
			assert.InDelta(t, tt.want, s.At(tt.bucket), 1e-9)
		})
	}
}

func TestSweep_ResetAndCopy(t *testing.T) {
	g := gridWithColumn(t, 25)
	s := NewSweep(360, 30, 10, 100)
	for i := 0; i < 5; i++ {
		s.Update(core.Pos{X: 410, Y: 310}, g)
	}

	out := s.Distances()
	out[0] = -5
	assert.NotEqual(t, -5.0, s.At(0), "Distances must return a copy")

	s.Reset()
	assert.Zero(t, s.Rotation())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, s.MaxRange(), s.At(i))
	}
}

func TestCoverage(t *testing.T) {
	c := NewCoverage()
	center := core.Cell{X: 5, Y: 5}

	assert.Equal(t, 9, c.MarkAround(center))
	assert.Equal(t, 0, c.MarkAround(center), "re-marking adds nothing")
	assert.Equal(t, 3, c.MarkAround(center.Offset(1, 0)))
	assert.Equal(t, 12, c.Len())
	assert.True(t, c.Has(core.Cell{X: 7, Y: 6}))
	assert.False(t, c.Has(core.Cell{X: 8, Y: 5}))

	// 5x5 around (5,5) spans x 3..7; columns 4..7 of rows 4..6 are marked.
	assert.InDelta(t, 12.0/25.0, c.LocalRatio(center, 2), 1e-9)
	assert.Equal(t, 1.0, c.LocalRatio(center, 1))

	seen := 0
	c.Each(func(core.Cell) { seen++ })
	assert.Equal(t, 12, seen)

	c.Reset()
	assert.Zero(t, c.Len())
}

func TestStuckDetector(t *testing.T) {
	tests := []struct {
		name     string
		samples  int
		step     float64
		immobile bool
	}{
		{"not enough samples", 29, 0, false},
		{"standing still", 30, 0, true},
		{"crawling below threshold", 30, 0.6, true},     // 29 * 0.6 = 17.4
		{"just above threshold", 30, 0.7, false},        // 20.3
		{"cruising", 30, 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewStuckDetector(50, 30, 20)
			for i := 0; i < tt.samples; i++ {
				d.Push(core.Pos{X: float64(i) * tt.step})
			}
			assert.Equal(t, tt.immobile, d.Immobile())
		})
	}
}

func TestStuckDetector_EvictsOldest(t *testing.T) {
	d := NewStuckDetector(50, 30, 20)
	for i := 0; i < 60; i++ {
		d.Push(core.Pos{X: float64(i)})
	}
	assert.Equal(t, 50, d.Len())
	assert.Equal(t, core.Pos{X: 10}, d.positions[0])
	assert.InDelta(t, 29, d.Displacement(), 1e-9)

	d.Reset()
	assert.Zero(t, d.Len())
	assert.Equal(t, -1.0, d.Displacement())
}
