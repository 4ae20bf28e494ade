package state

import "time"

// Speed limits for the simulation clock.
const (
	MinSpeed = 0.25
	MaxSpeed = 8.0

	// maxFrameTicks bounds catch-up after a stalled frame.
	maxFrameTicks = 480
)

// Clock converts wall time into simulation ticks.
type Clock struct {
	TickRate   float64 // Ticks per second at 1x
	Speed      float64 // Multiplier (1.0 = real-time)
	Paused     bool
	carry      float64 // Fractional ticks owed from earlier frames
	lastUpdate time.Time
}

// NewClock creates a running clock.
func NewClock(tickRate int) *Clock {
	return &Clock{
		TickRate:   float64(tickRate),
		Speed:      1.0,
		lastUpdate: time.Now(),
	}
}

// TogglePause pauses or resumes the clock.
func (c *Clock) TogglePause() {
	c.Paused = !c.Paused
	if !c.Paused {
		c.lastUpdate = time.Now()
		c.carry = 0
	}
}

// Advance returns the ticks owed since the previous call.
func (c *Clock) Advance() int {
	now := time.Now()
	elapsed := now.Sub(c.lastUpdate)
	c.lastUpdate = now
	return c.AdvanceBy(elapsed)
}

// AdvanceBy returns the ticks owed for elapsed wall time. A paused clock
// owes nothing.
func (c *Clock) AdvanceBy(elapsed time.Duration) int {
	if c.Paused || elapsed <= 0 {
		return 0
	}

	c.carry += elapsed.Seconds() * c.TickRate * c.Speed
	n := int(c.carry)
	c.carry -= float64(n)

	if n > maxFrameTicks {
		n = maxFrameTicks
		c.carry = 0
	}
	return n
}

// SetSpeed sets the speed multiplier.
func (c *Clock) SetSpeed(speed float64) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	c.Speed = speed
}

// SpeedUp doubles the speed.
func (c *Clock) SpeedUp() { c.SetSpeed(c.Speed * 2) }

// SlowDown halves the speed.
func (c *Clock) SlowDown() { c.SetSpeed(c.Speed / 2) }
