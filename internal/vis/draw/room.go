package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// Room colors
var (
	ColorFloor    = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	ColorCleaned  = color.NRGBA{R: 200, G: 230, B: 255, A: 255}
	ColorObstacle = color.NRGBA{R: 139, G: 69, B: 19, A: 255}
	ColorWall     = color.NRGBA{R: 64, G: 64, B: 64, A: 255}
	ColorGridLine = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	ColorDock     = color.NRGBA{R: 60, G: 170, B: 90, A: 255}
)

// CellColor returns the fill color of a cell.
func CellColor(k core.CellKind, cleaned bool) color.NRGBA {
	switch k {
	case core.Obstacle:
		return ColorObstacle
	case core.Wall:
		return ColorWall
	}
	if cleaned {
		return ColorCleaned
	}
	return ColorFloor
}

// DrawRoom renders the grid with cleaned floor highlighted and thin cell
// borders.
func DrawRoom(gtx layout.Context, grid *core.Grid, visited []core.Cell, camera *interact.Camera) {
	if grid == nil {
		return
	}
	cs := grid.CellSize()

	cleaned := make(map[core.Cell]bool, len(visited))
	for _, c := range visited {
		cleaned[c] = true
	}

	grid.Each(func(c core.Cell, k core.CellKind) {
		x0, y0 := camera.WorldToScreen(float64(c.X)*cs, float64(c.Y)*cs)
		x1, y1 := camera.WorldToScreen(float64(c.X+1)*cs, float64(c.Y+1)*cs)
		fillRect(gtx, x0, y0, x1, y1, CellColor(k, cleaned[c]))
	})

	if camera.Zoom*float32(cs) < 6 {
		return
	}
	w, h := grid.Size()
	for x := 0; x <= grid.Width(); x++ {
		sx, sy0 := camera.WorldToScreen(float64(x)*cs, 0)
		_, sy1 := camera.WorldToScreen(float64(x)*cs, h)
		fillRect(gtx, sx, sy0, sx+1, sy1, ColorGridLine)
	}
	for y := 0; y <= grid.Height(); y++ {
		sx0, sy := camera.WorldToScreen(0, float64(y)*cs)
		sx1, _ := camera.WorldToScreen(w, float64(y)*cs)
		fillRect(gtx, sx0, sy, sx1, sy+1, ColorGridLine)
	}
}

// DrawDock marks the charging dock.
func DrawDock(gtx layout.Context, dock core.Pos, camera *interact.Camera) {
	x, y := camera.WorldToScreen(dock.X, dock.Y)
	r := 6 * camera.Zoom
	drawCircleOutline(gtx, x, y, r, 2, ColorDock)
}
