package robot

// frontDistance probes straight ahead along the current heading in coarse
// steps and returns the first step that lands on a blocked or out-of-grid
// point, or the full probe range when the way is clear.
func (r *Robot) frontDistance(m Map) float64 {
	for d := r.cfg.ProbeStep; d < r.cfg.ProbeRange; d += r.cfg.ProbeStep {
		p := r.pos.Advance(r.heading, d)
		if !m.IsValidPosition(p.X, p.Y) {
			return d
		}
	}
	return r.cfg.ProbeRange
}

// obstacleAhead reports whether the probe is close enough to wall-follow.
func (r *Robot) obstacleAhead(m Map) bool {
	return r.frontDistance(m) < r.cfg.NearThreshold
}
