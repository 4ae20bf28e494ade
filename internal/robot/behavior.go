package robot

import "math"

// decide runs the current state's behaviour, which may pick a new target
// heading or change state.
func (r *Robot) decide(m Map) {
	switch r.state {
	case Exploring:
		r.explore(m)
	case Cleaning:
		r.clean(m)
	case Returning:
		r.returnToDock(m)
	case Stuck:
		r.recover()
	}
}

// explore roams freely: hug obstacles that come within the near threshold,
// otherwise hold course with occasional random turns.
func (r *Robot) explore(m Map) {
	r.turnTimer--

	if r.lowBattery() {
		r.setState(Returning)
		return
	}

	if r.obstacleAhead(m) {
		r.followWall()
		return
	}
	r.wallFollowing = false

	if r.turnTimer <= 0 && r.rng.Float64() < r.cfg.TurnChance {
		r.setTarget(r.target + r.uniform(-math.Pi/3, math.Pi/3))
		r.turnTimer = r.randInt(r.cfg.TurnMinTicks, r.cfg.TurnMaxTicks)
	}

	if r.spotDue(m) {
		r.setState(Cleaning)
	}
}

// followWall turns a fixed 45° off the current heading on the side chosen
// when the obstacle was first met.
func (r *Robot) followWall() {
	if !r.wallFollowing {
		r.wallFollowing = true
		r.wallDir = 1
		if r.rng.Intn(2) == 0 {
			r.wallDir = -1
		}
	}
	r.stats.WallFollowTicks++
	r.setTarget(r.heading + math.Pi/4*float64(r.wallDir))
}

// spotDue reports whether the robot sits in a poorly covered patch and may
// start a spot clean.
func (r *Robot) spotDue(m Map) bool {
	if r.cfg.CleaningTicks == 0 || r.spotCooldown > 0 {
		return false
	}
	here := m.CellAt(r.pos.X, r.pos.Y)
	return r.coverage.LocalRatio(here, r.cfg.SpotRadius) < r.cfg.SpotThreshold
}

// clean loops tightly over the current patch until the spot timer runs out
// or an obstacle comes close.
func (r *Robot) clean(m Map) {
	r.cleanTimer--

	switch {
	case r.lowBattery():
		r.setState(Returning)
		return
	case r.obstacleAhead(m), r.cleanTimer <= 0:
		r.setState(Exploring)
		return
	}

	if r.rng.Float64() < r.cfg.CleaningTurnChance {
		r.setTarget(r.target + math.Pi/6)
	}
}

// returnToDock steers toward the dock, wall-following around anything in
// the way, and recharges on arrival.
func (r *Robot) returnToDock(m Map) {
	if r.pos.Dist(r.dock) <= m.CellSize() {
		r.battery = 100
		r.stats.Recharges++
		r.setState(Exploring)
		return
	}

	if r.obstacleAhead(m) {
		r.followWall()
		return
	}
	r.wallFollowing = false
	r.setTarget(math.Atan2(r.dock.Y-r.pos.Y, r.dock.X-r.pos.X))
}

// recover spins toward random headings until the stuck countdown expires.
func (r *Robot) recover() {
	r.setTarget(r.target + r.uniform(-math.Pi, math.Pi))
	if r.stuckTimer > 0 {
		r.stuckTimer--
	}
	if r.stuckTimer == 0 {
		r.setState(Exploring)
	}
}

func (r *Robot) lowBattery() bool {
	return r.battery < r.cfg.LowBattery
}
