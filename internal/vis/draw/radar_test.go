package draw

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/core"
)

func TestRadarColor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "near"},
		{0.29, "near"},
		{0.3, "mid"},
		{0.59, "mid"},
		{0.6, "far"},
		{0.94, "far"},
	}
	names := map[string]color.NRGBA{"near": ColorRadarNear, "mid": ColorRadarMid, "far": ColorRadarFar}
	for _, tt := range tests {
		if got := RadarColor(tt.ratio); got != names[tt.want] {
			t.Errorf("RadarColor(%v) = %v, want %s", tt.ratio, got, tt.want)
		}
	}
}

func TestRadarPoints(t *testing.T) {
	// Four buckets: east, south, west, north.
	sweep := []float64{20, 100, 50, 96}
	pts := RadarPoints(sweep, 100, 200)

	require.Len(t, pts, 2, "near-max readings are dropped")

	assert.InDelta(t, 40, pts[0].Offset.X, 1e-3)
	assert.InDelta(t, 0, pts[0].Offset.Y, 1e-3)
	assert.Equal(t, ColorRadarNear, pts[0].Color)

	assert.InDelta(t, -100, pts[1].Offset.X, 1e-3)
	assert.InDelta(t, 0, pts[1].Offset.Y, 1e-3)
	assert.Equal(t, ColorRadarMid, pts[1].Color)

	assert.Nil(t, RadarPoints(nil, 100, 200))
	assert.Nil(t, RadarPoints(sweep, 0, 200))
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, ColorFloor, CellColor(core.Free, false))
	assert.Equal(t, ColorCleaned, CellColor(core.Free, true))
	assert.Equal(t, ColorObstacle, CellColor(core.Obstacle, true))
	assert.Equal(t, ColorWall, CellColor(core.Wall, false))
}
