// Package vis implements a Gio-based view of the vacuum simulation.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/sim"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
	"github.com/elektrokombinacija/robovac/internal/vis/state"
	"github.com/elektrokombinacija/robovac/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	toolbar   *widgets.Toolbar
	panel     *widgets.Panel
	camera    *interact.Camera
	logger    *zap.Logger
	quit      bool
}

// NewApp creates a new visualization application for a simulator.
func NewApp(s *sim.Simulator, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := state.NewState(s, logger)
	camera := interact.NewCamera()

	return &App{
		state:     st,
		theme:     material.NewTheme(),
		workspace: widgets.NewWorkspace(st, camera),
		toolbar:   widgets.NewToolbar(st, camera),
		panel:     widgets.NewPanel(st),
		camera:    camera,
		logger:    logger,
	}
}

// Run starts the application event loop. It returns nil when the user quits.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filters for keyboard input
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			if a.quit {
				a.logger.Info("quit requested")
				return nil
			}

			// Keep keyboard focus on the window
			event.Op(gtx.Ops, tag)
			gtx.Execute(key.FocusCmd{Tag: tag})

			a.state.Tick()
			a.layout(gtx)
			e.Frame(gtx.Ops)

			// Request continuous redraws while running
			if !a.state.Clock.Paused {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.NewRoom()
	case "R":
		a.state.ResetRobot()
	case "P":
		a.state.Clock.TogglePause()
	case "+", "=":
		a.state.Clock.SpeedUp()
	case "-":
		a.state.Clock.SlowDown()
	case "F":
		a.camera.Refit()
	case key.NameEscape:
		a.quit = true
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, a.workspace.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.panel.Layout(gtx, a.theme)
				}),
			)
		}),
	)
}
