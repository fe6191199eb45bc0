package maneuvers

import "math"

// RAANAlignmentTime returns the shortest non negative time (s) after which two ascending nodes
// coincide, given their precession rates (deg/s) and the current node separation ΔΩ (deg),
// measured from the target node to the initial node.
// Nodes which are already aligned need no wait, even when they drift at the same rate.
// Otherwise nodes which drift at the same rate never meet, which is signaled by +Inf.
func RAANAlignmentTime(initialRate, targetRate, ΔΩ float64) float64 {
	ΔΩ = Wrap360(ΔΩ)
	if ΔΩ < nodeε || 360-ΔΩ < nodeε {
		return 0
	}
	rateDelta := targetRate - initialRate
	if rateDelta == 0 {
		return math.Inf(1)
	}
	if rateDelta < 0 {
		// The separation grows: the nodes meet once it reaches a full turn.
		ΔΩ -= 360
	}
	return ΔΩ / rateDelta
}
