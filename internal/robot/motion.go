package robot

import "math"

// move turns part of the way toward the target heading and steps forward at
// fixed speed. A blocked step leaves the position untouched and turns the
// target away by a random half-to-full reversal.
func (r *Robot) move(m Map) {
	diff := shortestAngle(r.target - r.heading)
	r.heading = normalizeAngle(r.heading + diff*r.cfg.AngularGain)

	next := r.pos.Advance(r.heading, r.cfg.Speed)
	if m.IsValidPosition(next.X, next.Y) {
		r.pos = next
		return
	}

	r.stats.Collisions++
	r.setTarget(r.target + r.uniform(math.Pi/2, math.Pi))
}

// shortestAngle wraps an angle into (−π, π].
func shortestAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func (r *Robot) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// randInt returns a uniform integer in [lo, hi].
func (r *Robot) randInt(lo, hi int) int {
	return lo + r.rng.Intn(hi-lo+1)
}
