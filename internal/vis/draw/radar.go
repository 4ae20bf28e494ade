package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
)

// Radar colors
var (
	ColorRadarBg   = color.NRGBA{R: 0, G: 20, B: 0, A: 255}
	ColorRadarRing = color.NRGBA{R: 0, G: 100, B: 0, A: 255}
	ColorRadarNear = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	ColorRadarMid  = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	ColorRadarFar  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
)

// radarCutoff hides readings this close to max range; they mean "nothing
// seen" rather than a hit.
const radarCutoff = 0.95

// RadarPoint is one plotted echo, offset from the radar centre.
type RadarPoint struct {
	Offset f32.Point
	Color  color.NRGBA
}

// RadarColor bands a reading by its fraction of the maximum range.
func RadarColor(ratio float64) color.NRGBA {
	switch {
	case ratio < 0.3:
		return ColorRadarNear
	case ratio < 0.6:
		return ColorRadarMid
	default:
		return ColorRadarFar
	}
}

// RadarPoints projects sweep readings onto a radar of the given pixel
// radius. Bucket i points at angle 2πi/len(sweep).
func RadarPoints(sweep []float64, maxRange float64, radius float32) []RadarPoint {
	if maxRange <= 0 || len(sweep) == 0 {
		return nil
	}

	var pts []RadarPoint
	for i, d := range sweep {
		if d >= maxRange*radarCutoff {
			continue
		}
		ratio := d / maxRange
		angle := float64(i) / float64(len(sweep)) * 2 * math.Pi
		r := float32(ratio) * radius
		pts = append(pts, RadarPoint{
			Offset: f32.Pt(r*float32(math.Cos(angle)), r*float32(math.Sin(angle))),
			Color:  RadarColor(ratio),
		})
	}
	return pts
}

// DrawRadar renders a size x size radar scope: range rings, echoes, the
// scan line at the sweep rotation and the robot heading.
func DrawRadar(gtx layout.Context, sweep []float64, maxRange, rotation, heading float64, size int) {
	radius := float32(size)/2 - 4
	cx, cy := float32(size)/2, float32(size)/2

	drawFilledCircle(gtx, cx, cy, radius, ColorRadarBg)
	for _, f := range []float32{1.0 / 3, 2.0 / 3, 1} {
		drawCircleOutline(gtx, cx, cy, radius*f, 1, ColorRadarRing)
	}
	drawLine(gtx, cx-radius, cy, cx+radius, cy, 1, ColorRadarRing)
	drawLine(gtx, cx, cy-radius, cx, cy+radius, 1, ColorRadarRing)

	for _, p := range RadarPoints(sweep, maxRange, radius) {
		drawFilledCircle(gtx, cx+p.Offset.X, cy+p.Offset.Y, 2, p.Color)
	}

	sx := cx + float32(math.Cos(rotation))*radius
	sy := cy + float32(math.Sin(rotation))*radius
	drawLine(gtx, cx, cy, sx, sy, 2, ColorRadarFar)

	hx := cx + float32(math.Cos(heading))*radius*0.3
	hy := cy + float32(math.Sin(heading))*radius*0.3
	drawLine(gtx, cx, cy, hx, hy, 3, ColorHeading)
	drawFilledCircle(gtx, cx, cy, 4, ColorExploring)
}
