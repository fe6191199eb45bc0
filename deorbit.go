package maneuvers

// GroundRadius returns the radius to which debris are lowered for disposal: the mean radius of
// the body plus a safety margin (m).
func GroundRadius(body CelestialObject, margin float64) float64 {
	return body.MeanRadius + margin
}

// DeorbitΔv returns the cost of lowering the periapsis of o down to the ground radius, keeping
// its apoapsis, so that the object reenters.
func DeorbitΔv(o Orbit, groundRadius float64) (float64, error) {
	disposal, err := NewOrbitFromApsides(o.Apoapsis(), groundRadius, o.μ)
	if err != nil {
		return 0, err
	}
	return TangentialTransferΔv(o, disposal), nil
}
