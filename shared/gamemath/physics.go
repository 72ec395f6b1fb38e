package gamemath

import "math"

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	return math.Max(-max, math.Min(speed, max))
}

// AimDirection returns the unit aim vector for a player facing facingX (-1 or
// 1). Holding up or down tilts the aim 45 degrees while moving and points it
// straight up or down while standing still.
func AimDirection(facingX float64, upPressed, downPressed, movingHorizontally bool) Vec3 {
	var aim Vec3
	switch {
	case upPressed && !downPressed:
		aim = V3(0, -1, 0)
	case downPressed && !upPressed:
		aim = V3(0, 1, 0)
	default:
		return V3(facingX, 0, 0)
	}
	if movingHorizontally {
		aim.X = facingX
	}
	n, _ := aim.Normalize()
	return n
}
