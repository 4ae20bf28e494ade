package draw

import (
	"image/color"
	"math"

	"gioui.org/layout"

	"github.com/elektrokombinacija/robovac/internal/robot"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// Robot colors by state
var (
	ColorExploring = color.NRGBA{R: 60, G: 140, B: 230, A: 255}
	ColorCleaning  = color.NRGBA{R: 40, G: 180, B: 120, A: 255}
	ColorReturning = color.NRGBA{R: 230, G: 160, B: 40, A: 255}
	ColorStuck     = color.NRGBA{R: 220, G: 50, B: 50, A: 255}
	ColorHeading   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorScanLine  = color.NRGBA{R: 0, G: 200, B: 0, A: 140}
)

// StateColor returns the body color for a behavioural state.
func StateColor(s robot.State) color.NRGBA {
	switch s {
	case robot.Cleaning:
		return ColorCleaning
	case robot.Returning:
		return ColorReturning
	case robot.Stuck:
		return ColorStuck
	default:
		return ColorExploring
	}
}

// DrawRobot draws the robot body, its heading and the current sweep line.
func DrawRobot(gtx layout.Context, st robot.Status, radius, sweepRange float64, camera *interact.Camera) {
	cx, cy := camera.WorldToScreen(st.Position.X, st.Position.Y)
	r := float32(radius) * camera.Zoom

	// Sweep line
	sx, sy := camera.WorldToScreen(
		st.Position.X+math.Cos(st.SweepRotation)*sweepRange,
		st.Position.Y+math.Sin(st.SweepRotation)*sweepRange,
	)
	drawLine(gtx, cx, cy, sx, sy, 1, ColorScanLine)

	drawFilledCircle(gtx, cx, cy, r, StateColor(st.State))
	if st.WallFollowing {
		drawCircleOutline(gtx, cx, cy, r+2, 1.5, ColorReturning)
	}

	// Heading
	hx := cx + float32(math.Cos(st.Heading))*r
	hy := cy + float32(math.Sin(st.Heading))*r
	drawLine(gtx, cx, cy, hx, hy, 2, ColorHeading)
}
