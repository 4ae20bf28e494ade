package widgets

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/robovac/internal/vis/draw"
	"github.com/elektrokombinacija/robovac/internal/vis/state"
)

var (
	colorGood = color.NRGBA{R: 0, G: 180, B: 0, A: 255}
	colorFair = color.NRGBA{R: 220, G: 170, B: 0, A: 255}
	colorBad  = color.NRGBA{R: 220, G: 0, B: 0, A: 255}
	colorText = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colorDim  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// BatteryColor colors the battery bar by charge level.
func BatteryColor(percent float64) color.NRGBA {
	switch {
	case percent > 50:
		return colorGood
	case percent > 20:
		return colorFair
	default:
		return colorBad
	}
}

// EfficiencyColor colors the coverage figure.
func EfficiencyColor(percent float64) color.NRGBA {
	switch {
	case percent > 80:
		return colorGood
	case percent > 50:
		return colorFair
	default:
		return colorBad
	}
}

// Panel shows robot status, the radar scope and the key bindings.
type Panel struct {
	state *state.State
	width unit.Dp
}

// NewPanel creates a side panel.
func NewPanel(st *state.State) *Panel {
	return &Panel{state: st, width: 300}
}

// Layout renders the panel.
func (p *Panel) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Dp(p.width)
	gtx.Constraints = layout.Exact(image.Pt(width, gtx.Constraints.Max.Y))

	rect := image.Rect(0, 0, width, gtx.Constraints.Max.Y)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	snap := p.state.Snapshot
	st := snap.Status

	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(p.heading(th, "Robot status")),
			layout.Rigid(p.line(th, fmt.Sprintf("Mode: %s", st.State), draw.StateColor(st.State))),
			layout.Rigid(p.line(th, fmt.Sprintf("Battery: %.1f%%", st.Battery), colorText)),
			layout.Rigid(p.batteryBar(st.Battery)),
			layout.Rigid(p.line(th, fmt.Sprintf("Cleaned tiles: %d / %d", st.CleanedTiles, snap.FreeTiles), colorText)),
			layout.Rigid(p.line(th, fmt.Sprintf("Position: (%.0f, %.0f)", st.Position.X, st.Position.Y), colorText)),
			layout.Rigid(p.line(th, fmt.Sprintf("Sweep angle: %.0f°", st.SweepRotation*180/math.Pi), colorText)),
			layout.Rigid(p.line(th, "Time: "+snap.Clock(), colorText)),
			layout.Rigid(p.line(th, fmt.Sprintf("Efficiency: %.1f%%", snap.Coverage), EfficiencyColor(snap.Coverage))),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(p.heading(th, "Radar")),
			layout.Rigid(p.radar),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(p.heading(th, "Controls")),
			layout.Rigid(p.line(th, "Space  new room", colorDim)),
			layout.Rigid(p.line(th, "R  reset robot", colorDim)),
			layout.Rigid(p.line(th, "P  pause", colorDim)),
			layout.Rigid(p.line(th, "+ / -  speed", colorDim)),
			layout.Rigid(p.line(th, "F  fit view   Esc  quit", colorDim)),
			layout.Rigid(p.line(th, "Right-drag pan, wheel zoom", colorDim)),
		)
	})
}

func (p *Panel) heading(th *material.Theme, text string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		l := material.Label(th, 15, text)
		l.Color = colorText
		return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, l.Layout)
	}
}

func (p *Panel) line(th *material.Theme, text string, col color.NRGBA) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		l := material.Label(th, 12, text)
		l.Color = col
		return layout.Inset{Bottom: unit.Dp(2)}.Layout(gtx, l.Layout)
	}
}

func (p *Panel) batteryBar(percent float64) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		w := gtx.Dp(150)
		h := gtx.Dp(8)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(image.Rect(0, 0, w, h)).Op())
		fill := int(float64(w) * math.Max(0, math.Min(100, percent)) / 100)
		paint.FillShape(gtx.Ops, BatteryColor(percent), clip.Rect(image.Rect(0, 0, fill, h)).Op())
		return layout.Dimensions{Size: image.Pt(w, h+gtx.Dp(4))}
	}
}

func (p *Panel) radar(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max.X
	if size > gtx.Dp(260) {
		size = gtx.Dp(260)
	}
	snap := p.state.Snapshot

	defer op.Offset(image.Pt((gtx.Constraints.Max.X-size)/2, 0)).Push(gtx.Ops).Pop()
	draw.DrawRadar(gtx, snap.Sweep, snap.SweepRange, snap.Status.SweepRotation, snap.Status.Heading, size)
	return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, size)}
}
