package hook

import "github.com/automoto/freezetag/shared/gamemath"

// StepInput is everything the pull force depends on. Owner and Hook must come
// from the same tick.
type StepInput struct {
	Owner    gamemath.Vec3
	Hook     gamemath.Vec3
	Attached bool
	Tension  Tension

	MinLength float64
	MaxLength float64
	Pull      float64 // impulse per unit of excess chain
}

// StepResult is the outcome of one physics step.
type StepResult struct {
	Length   float64 // current chain length
	Desired  float64 // desired length; 0 while flying
	Exceeded bool    // chain longer than MaxLength, the hook must be released
	Taut     bool    // Impulse should be applied to the owner
	Impulse  gamemath.Vec3
}

// DesiredLength returns the chain length a tension mode pulls toward.
func DesiredLength(t Tension, minLength, maxLength float64) float64 {
	switch t {
	case TensionShrink:
		return minLength * 0.5
	case TensionGrow:
		return maxLength * 0.8
	default:
		return minLength
	}
}

// Step computes the pull force for one tick. It has no side effects.
func Step(in StepInput) StepResult {
	chain := in.Hook.Sub(in.Owner)
	dir, d := chain.Normalize()

	res := StepResult{Length: d}
	if d > in.MaxLength {
		res.Exceeded = true
		return res
	}
	if !in.Attached {
		return res
	}

	res.Desired = DesiredLength(in.Tension, in.MinLength, in.MaxLength)
	if d <= res.Desired {
		return res
	}

	res.Taut = true
	res.Impulse = dir.Scale((d - res.Desired) * in.Pull)
	return res
}
