// Package interact handles user interactions like pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
)

const (
	minZoom = 0.1
	maxZoom = 10
)

// Camera manages view transformation (pan and zoom).
type Camera struct {
	// View transform
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Zoom level (1.0 = one pixel per world unit)

	// Interaction state
	dragging bool
	lastX    float32
	lastY    float32
	fitted   int // Room the view was last fitted to, -1 for none
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Zoom:   1.0,
		fitted: -1,
	}
}

// Refit makes the next FitRoom call recompute the view.
func (c *Camera) Refit() {
	c.fitted = -1
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events: secondary or tertiary drag pans,
// the wheel zooms around the pointer.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y > 0 {
			c.ZoomBy(1/1.1, ev.Position.X, ev.Position.Y)
		} else if ev.Scroll.Y < 0 {
			c.ZoomBy(1.1, ev.Position.X, ev.Position.Y)
		}
	}
}

// ZoomBy zooms by a factor, keeping the world point under the screen
// centre fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)

	c.Zoom = clampZoom(c.Zoom * factor)

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
}

// CenterOn centers the camera on a world position.
func (c *Camera) CenterOn(worldX, worldY float64, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(worldX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldY)*c.Zoom
}

// FitRoom fits a room of the given world size into the screen once per
// room id, leaving the user's pan and zoom alone afterwards.
func (c *Camera) FitRoom(roomID int, worldW, worldH float64, screenWidth, screenHeight float32) {
	if c.fitted == roomID {
		return
	}
	c.fitted = roomID
	c.FitBounds(0, 0, worldW, worldH, screenWidth, screenHeight, 16)
}

// FitBounds adjusts camera to fit the given world bounds.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY

	if worldW <= 0 || worldH <= 0 {
		return
	}

	availW := screenWidth - 2*margin
	availH := screenHeight - 2*margin

	zoomX := availW / float32(worldW)
	zoomY := availH / float32(worldH)

	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.Zoom = clampZoom(c.Zoom)

	c.CenterOn((minX+maxX)/2, (minY+maxY)/2, screenWidth, screenHeight)
}

func clampZoom(z float32) float32 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
