package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/sim"
)

func TestClock_AdvanceBy(t *testing.T) {
	tests := []struct {
		name    string
		speed   float64
		paused  bool
		elapsed []time.Duration
		want    []int
	}{
		{"one second at 1x", 1, false, []time.Duration{time.Second}, []int{60}},
		{"fractions carry over", 1, false,
			[]time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond},
			[]int{0, 1, 0}},
		{"double speed", 2, false, []time.Duration{500 * time.Millisecond}, []int{60}},
		{"paused", 1, true, []time.Duration{time.Second}, []int{0}},
		{"stall is capped", 8, false, []time.Duration{10 * time.Second}, []int{maxFrameTicks}},
		{"negative elapsed", 1, false, []time.Duration{-time.Second}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(60)
			c.SetSpeed(tt.speed)
			c.Paused = tt.paused
			for i, d := range tt.elapsed {
				if got := c.AdvanceBy(d); got != tt.want[i] {
					t.Errorf("AdvanceBy(%v) #%d = %d, want %d", d, i, got, tt.want[i])
				}
			}
		})
	}
}

func TestClock_Speed(t *testing.T) {
	c := NewClock(60)
	for i := 0; i < 10; i++ {
		c.SpeedUp()
	}
	assert.Equal(t, MaxSpeed, c.Speed)
	for i := 0; i < 10; i++ {
		c.SlowDown()
	}
	assert.Equal(t, MinSpeed, c.Speed)

	c.TogglePause()
	assert.True(t, c.Paused)
	c.TogglePause()
	assert.False(t, c.Paused)
}

func TestState_Commands(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.ProgressEvery = 0
	s, err := sim.New(cfg, zap.NewNop())
	require.NoError(t, err)

	st := NewState(s, nil)
	assert.Zero(t, st.Snapshot.Tick)

	st.StepN(25)
	assert.Equal(t, 25, st.Snapshot.Tick)
	st.StepN(0)
	assert.Equal(t, 25, st.Snapshot.Tick)

	grid := st.Snapshot.Grid
	st.ResetRobot()
	assert.Zero(t, st.Snapshot.Tick)
	assert.Same(t, grid, st.Snapshot.Grid)
	assert.Zero(t, st.RoomID)

	st.NewRoom()
	assert.Equal(t, 1, st.RoomID)
	assert.NotSame(t, grid, st.Snapshot.Grid)
}
