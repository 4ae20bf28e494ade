// Package state manages the visualization state.
package state

import (
	"go.uber.org/zap"

	"github.com/elektrokombinacija/robovac/internal/sim"
)

// State holds all visualization state.
type State struct {
	Sim      *sim.Simulator
	Clock    *Clock
	Snapshot sim.Snapshot // Refreshed after every change; read by widgets
	RoomID   int          // Bumped on every new room so the camera can refit

	logger *zap.Logger
}

// NewState creates a new visualization state.
func NewState(s *sim.Simulator, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := &State{
		Sim:    s,
		Clock:  NewClock(s.Config().TickRate),
		logger: logger,
	}
	st.Snapshot = s.Snapshot()
	return st
}

// Tick steps the simulator by the ticks owed since the last frame.
func (s *State) Tick() {
	s.StepN(s.Clock.Advance())
}

// StepN steps the simulator n times and refreshes the snapshot.
func (s *State) StepN(n int) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		s.Sim.Step()
	}
	s.Snapshot = s.Sim.Snapshot()
}

// NewRoom generates a new room.
func (s *State) NewRoom() {
	if err := s.Sim.NewRoom(); err != nil {
		s.logger.Error("new room failed", zap.Error(err))
		return
	}
	s.RoomID++
	s.Snapshot = s.Sim.Snapshot()
}

// ResetRobot restarts the robot in the current room.
func (s *State) ResetRobot() {
	if err := s.Sim.ResetRobot(); err != nil {
		s.logger.Error("reset failed", zap.Error(err))
		return
	}
	s.Snapshot = s.Sim.Snapshot()
}
