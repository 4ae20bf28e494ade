package robot

import (
	"fmt"
	"math"
)

// Config holds the robot's physical and behavioural parameters.
type Config struct {
	// Body and motion
	Radius      float64 `yaml:"radius"`       // Body radius (sweep rays start just outside it)
	Speed       float64 `yaml:"speed"`        // Units per tick
	AngularGain float64 `yaml:"angular_gain"` // Fraction of the heading error corrected per tick

	// Proximity probe
	ProbeRange    float64 `yaml:"probe_range"`
	ProbeStep     float64 `yaml:"probe_step"`
	NearThreshold float64 `yaml:"near_threshold"` // Probe distance below which the robot wall-follows

	// Range sensor sweep
	SweepRange   float64 `yaml:"sweep_range"`
	SweepBuckets int     `yaml:"sweep_buckets"` // Angular resolution of the full circle
	SweepSlice   int     `yaml:"sweep_slice"`   // Buckets refreshed per tick

	// Battery
	BatteryDrain float64 `yaml:"battery_drain"` // Percent per tick
	LowBattery   float64 `yaml:"low_battery"`   // Return to dock below this level; 0 disables

	// Stuck detection
	HistorySize    int     `yaml:"history_size"`
	StuckWindow    int     `yaml:"stuck_window"`
	StuckThreshold float64 `yaml:"stuck_threshold"` // Minimum travel over the window
	StuckTicks     int     `yaml:"stuck_ticks"`     // Recovery countdown

	// Free exploration
	TurnChance   float64 `yaml:"turn_chance"`
	TurnMinTicks int     `yaml:"turn_min_ticks"`
	TurnMaxTicks int     `yaml:"turn_max_ticks"`

	// Spot cleaning
	CleaningTicks      int     `yaml:"cleaning_ticks"` // 0 disables spot cleaning
	CleaningTurnChance float64 `yaml:"cleaning_turn_chance"`
	SpotCooldown       int     `yaml:"spot_cooldown"`
	SpotRadius         int     `yaml:"spot_radius"`    // Neighbourhood radius in cells
	SpotThreshold      float64 `yaml:"spot_threshold"` // Start spot cleaning below this local coverage
}

// DefaultConfig returns the stock robot parameters.
func DefaultConfig() Config {
	return Config{
		Radius:      8,
		Speed:       1.5,
		AngularGain: 0.1,

		ProbeRange:    30,
		ProbeStep:     5,
		NearThreshold: 25,

		SweepRange:   100,
		SweepBuckets: 360,
		SweepSlice:   30,

		BatteryDrain: 0.02,
		LowBattery:   20,

		HistorySize:    50,
		StuckWindow:    30,
		StuckThreshold: 20,
		StuckTicks:     60,

		TurnChance:   0.3,
		TurnMinTicks: 30,
		TurnMaxTicks: 120,

		CleaningTicks:      90,
		CleaningTurnChance: 0.1,
		SpotCooldown:       600,
		SpotRadius:         2,
		SpotThreshold:      0.5,
	}
}

// Validate checks that the parameters describe a usable robot.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"speed", c.Speed},
		{"probe_range", c.ProbeRange},
		{"probe_step", c.ProbeStep},
		{"sweep_range", c.SweepRange},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%s must be positive and finite, got %v", p.name, p.value)
		}
	}

	if c.Radius < 0 {
		return fmt.Errorf("radius must be non-negative, got %v", c.Radius)
	}
	if c.AngularGain <= 0 || c.AngularGain > 1 {
		return fmt.Errorf("angular_gain must be in (0, 1], got %v", c.AngularGain)
	}
	if c.NearThreshold < 0 {
		return fmt.Errorf("near_threshold must be non-negative, got %v", c.NearThreshold)
	}

	if c.SweepBuckets <= 0 {
		return fmt.Errorf("sweep_buckets must be positive, got %d", c.SweepBuckets)
	}
	if c.SweepSlice <= 0 || c.SweepSlice > c.SweepBuckets || c.SweepBuckets%c.SweepSlice != 0 {
		return fmt.Errorf("sweep_slice must divide sweep_buckets (%d), got %d", c.SweepBuckets, c.SweepSlice)
	}

	if c.BatteryDrain < 0 {
		return fmt.Errorf("battery_drain must be non-negative, got %v", c.BatteryDrain)
	}
	if c.LowBattery < 0 || c.LowBattery >= 100 {
		return fmt.Errorf("low_battery must be in [0, 100), got %v", c.LowBattery)
	}

	if c.StuckWindow < 2 {
		return fmt.Errorf("stuck_window must be at least 2, got %d", c.StuckWindow)
	}
	if c.HistorySize < c.StuckWindow {
		return fmt.Errorf("history_size (%d) must hold the stuck window (%d)", c.HistorySize, c.StuckWindow)
	}
	if c.StuckTicks <= 0 {
		return fmt.Errorf("stuck_ticks must be positive, got %d", c.StuckTicks)
	}

	if c.TurnChance < 0 || c.TurnChance > 1 {
		return fmt.Errorf("turn_chance must be in [0, 1], got %v", c.TurnChance)
	}
	if c.TurnMinTicks < 0 || c.TurnMaxTicks < c.TurnMinTicks {
		return fmt.Errorf("turn ticks range [%d, %d] is invalid", c.TurnMinTicks, c.TurnMaxTicks)
	}

	if c.CleaningTicks < 0 || c.SpotCooldown < 0 || c.SpotRadius < 0 {
		return fmt.Errorf("spot cleaning parameters must be non-negative")
	}
	if c.CleaningTurnChance < 0 || c.CleaningTurnChance > 1 {
		return fmt.Errorf("cleaning_turn_chance must be in [0, 1], got %v", c.CleaningTurnChance)
	}

	return nil
}
