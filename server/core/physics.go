package core

import (
	"math"

	"github.com/automoto/freezetag/hook"
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/automoto/freezetag/tags"
	"github.com/yohamta/donburi"
)

// Physics constants, tuned per 60 Hz step.
const (
	gravity      = 0.75
	jumpSpeed    = 15.0
	maxSpeed     = 6.0
	acceleration = 0.75
	friction     = 0.5
	maxFallSpeed = 10.0
	maxStepSpeed = 16.0 // per-step movement cap, keeps tiles from being skipped
	stompBounce  = 8.0

	// physicsRate converts per-step speeds to units per second.
	physicsRate = 60.0
)

// stepPlayers runs one 60 Hz physics sub-step for every player in the level.
// Sub-stepping keeps the 60 Hz constants valid at the server's lower tick rate.
func (s *Server) stepPlayers() {
	for _, sess := range s.sessions.All() {
		pp := sess.Physics
		if !pp.InSpace || !s.world.Valid(sess.Entity) {
			continue
		}
		vel := netcomponents.NetVelocity.Get(s.world.Entry(sess.Entity))
		s.stepPlayerPhysics(pp, vel, s.rules.IsFrozen(sess.Entity))
	}
}

// clearOverrides ends last tick's hook pull before the hooks think again.
func (s *Server) clearOverrides() {
	for _, sess := range s.sessions.All() {
		sess.Physics.Override = false
	}
}

// stepPlayerPhysics performs a single 60 Hz physics sub-step for one player.
// Frozen players keep falling but ignore their input.
func (s *Server) stepPlayerPhysics(pp *PlayerPhysics, vel *netcomponents.NetVelocityData, frozen bool) {
	direction, jump := pp.Direction, pp.JumpPressed
	if frozen {
		direction, jump = 0, false
	}

	// --- Horizontal input ---
	if direction != 0 {
		vel.SpeedX += float64(direction) * acceleration
	}

	// --- Jump (edge-triggered) ---
	if jump && !pp.JumpWasPressed && pp.OnGround {
		vel.SpeedY = -jumpSpeed
		pp.OnGround = false
	}
	pp.JumpWasPressed = pp.JumpPressed

	// --- Friction and speed clamp, skipped while the hook pulls ---
	if !pp.Override {
		if pp.OnGround {
			vel.SpeedX = gamemath.ApplyFriction(vel.SpeedX, friction)
		}
		vel.SpeedX = gamemath.ClampSpeed(vel.SpeedX, maxSpeed)
	}

	// --- Gravity ---
	vel.SpeedY += gravity
	if !pp.Override && vel.SpeedY > maxFallSpeed {
		vel.SpeedY = maxFallSpeed
	}

	// --- Resolve horizontal collision ---
	dx := math.Max(math.Min(vel.SpeedX, maxStepSpeed), -maxStepSpeed)
	if dx != 0 {
		if check := pp.Object.Check(dx, 0, tags.ResolvSolid); check != nil {
			if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
				vel.SpeedX = 0
			}
		}
		pp.Object.X += dx
	}

	// --- Resolve vertical collision ---
	dy := math.Max(math.Min(vel.SpeedY, maxStepSpeed), -maxStepSpeed)

	checkDist := dy
	if dy >= 0 {
		checkDist++
	}

	defer pp.Object.Update()

	if check := pp.Object.Check(0, checkDist, tags.ResolvSolid, tags.ResolvPlayer); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			pp.Object.Y += contact.Y()
			vel.SpeedY = 0
			// Landing when moving down, hitting the ceiling otherwise
			pp.OnGround = dy >= 0
			return
		}

		if dy > 1 {
			if others := check.ObjectsByTags(tags.ResolvPlayer); len(others) > 0 {
				contact := check.ContactWithObject(others[0])
				pp.Object.Y += contact.Y()
				vel.SpeedY = -stompBounce
				pp.OnGround = false
				if victim, ok := others[0].Data.(donburi.Entity); ok {
					pp.Stomped = append(pp.Stomped, victim)
				}
				return
			}
		}
	}

	// No collision, freefall
	pp.OnGround = false
	pp.Object.Y += dy
}

// deriveState maps physics and rule state to a NetPlayerState animation state.
func (s *Server) deriveState(sess *Session, vel *netcomponents.NetVelocityData) netconfig.StateID {
	switch {
	case !sess.Physics.InSpace:
		return netconfig.Spectating
	case s.rules.IsFrozen(sess.Entity):
		if s.rules.ThawProgress(sess.Entity) > 0 {
			return netconfig.Thawing
		}
		return netconfig.Frozen
	case s.hooks.State(sess.Entity) != hook.Detached:
		return netconfig.Hooked
	case !sess.Physics.OnGround:
		return netconfig.Jump
	case math.Abs(vel.SpeedX) >= 0.1:
		return netconfig.Running
	}
	return netconfig.Idle
}
