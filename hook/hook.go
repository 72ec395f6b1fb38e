// Package hook implements the grappling hook: one projectile per player that
// flies until it latches onto something, then pulls its owner toward the
// attachment point every tick.
//
// The package owns no entities. Spawning, moving and colliding projectiles is
// done by the host through the World interface; the host calls Touch when a
// flying hook hits something and Update once per tick.
package hook

import (
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/yohamta/donburi"
)

// State is the attachment state of a player's hook.
type State int

const (
	Detached State = iota
	Flying
	Attached
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Attached:
		return "attached"
	default:
		return "detached"
	}
}

// Tension selects the chain length the pull force works toward.
type Tension int

const (
	TensionNormal Tension = iota // min length
	TensionShrink                // half the min length
	TensionGrow                  // 80% of the max length
)

func (t Tension) String() string {
	switch t {
	case TensionShrink:
		return "shrink"
	case TensionGrow:
		return "grow"
	default:
		return "normal"
	}
}

// Hook is a read-only view of a live hook.
type Hook struct {
	Owner     donburi.Entity
	Body      donburi.Entity // projectile entity in the host world
	Target    donburi.Entity
	HasTarget bool
	State     State
	Origin    gamemath.Vec3 // position at the last think or touch
}

// World is the entity collaborator the hook drives. All positions and
// velocities are in world units and units per second.
type World interface {
	// Valid reports whether the entity still exists.
	Valid(e donburi.Entity) bool
	// Alive reports whether e is a player that exists, has health left and
	// is in control of its movement.
	Alive(e donburi.Entity) bool
	IsPlayer(e donburi.Entity) bool

	Origin(e donburi.Entity) gamemath.Vec3
	Velocity(e donburi.Entity) gamemath.Vec3
	SetVelocity(e donburi.Entity, v gamemath.Vec3)
	// OverridePrediction tells the owner's client not to predict its own
	// movement this tick.
	OverridePrediction(e donburi.Entity)
	// Aim returns where a player's projectiles start and the unit direction
	// they travel in.
	Aim(e donburi.Entity) (origin, dir gamemath.Vec3)

	SpawnProjectile(owner donburi.Entity, origin, velocity gamemath.Vec3) (donburi.Entity, bool)
	ProjectileOrigin(p donburi.Entity) gamemath.Vec3
	SetProjectileOrigin(p donburi.Entity, origin gamemath.Vec3)
	// StopProjectile zeroes the velocity and disables movement and touch
	// callbacks.
	StopProjectile(p donburi.Entity)
	FreeProjectile(p donburi.Entity)
}

// Effects receives the chain visual for every tick a hook exists.
type Effects interface {
	Chain(owner donburi.Entity, from, to gamemath.Vec3)
}
