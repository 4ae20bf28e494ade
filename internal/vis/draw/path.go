package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// ColorTrail is the base color of the robot's trail.
var ColorTrail = color.NRGBA{R: 100, G: 100, B: 255, A: 255}

// DrawTrail draws a fading trail behind the robot, oldest point first.
func DrawTrail(gtx layout.Context, history []core.Pos, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(history) < 2 {
		return
	}

	n := len(history)
	for i := 0; i < n-1; i++ {
		// Fade alpha from start to end
		col := baseColor
		col.A = uint8(40 + float64(i)/float64(n)*160)

		w := maxWidth * camera.Zoom * (0.4 + 0.6*float32(i)/float32(n))

		x1, y1 := camera.WorldToScreen(history[i].X, history[i].Y)
		x2, y2 := camera.WorldToScreen(history[i+1].X, history[i+1].Y)

		drawLine(gtx, x1, y1, x2, y2, w, col)
	}
}
