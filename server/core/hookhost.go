package core

import (
	"log"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/automoto/freezetag/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

// hookHost adapts the server's entities to hook.World and hook.Effects.
// Player velocities are stored per 60 Hz step and exposed in units/second.
type hookHost struct {
	s *Server
}

func (h *hookHost) Valid(e donburi.Entity) bool {
	return h.s.world.Valid(e)
}

// Alive is true for joined players on a team that are not frozen.
func (h *hookHost) Alive(e donburi.Entity) bool {
	sess, ok := h.s.sessions.ByEntity(e)
	if !ok || !h.s.world.Valid(e) || !sess.Physics.InSpace {
		return false
	}
	if h.s.rules.Teams.TeamOf(e) == netconfig.TeamNone {
		return false
	}
	return !h.s.rules.IsFrozen(e)
}

func (h *hookHost) IsPlayer(e donburi.Entity) bool {
	return h.s.world.Valid(e) && h.s.world.Entry(e).HasComponent(tags.Player)
}

func (h *hookHost) Origin(e donburi.Entity) gamemath.Vec3 {
	if sess, ok := h.s.sessions.ByEntity(e); ok {
		x, y := sess.Physics.center()
		return gamemath.V3(x, y, 0)
	}
	if hp, ok := h.s.hookBodies[e]; ok {
		return hp.origin()
	}
	return gamemath.Vec3{}
}

func (h *hookHost) Velocity(e donburi.Entity) gamemath.Vec3 {
	if !h.s.world.Valid(e) {
		return gamemath.Vec3{}
	}
	entry := h.s.world.Entry(e)
	if !entry.HasComponent(netcomponents.NetVelocity) {
		return gamemath.Vec3{}
	}
	vel := netcomponents.NetVelocity.Get(entry)
	return gamemath.V3(vel.SpeedX, vel.SpeedY, vel.SpeedZ).Scale(physicsRate)
}

func (h *hookHost) SetVelocity(e donburi.Entity, v gamemath.Vec3) {
	if !h.s.world.Valid(e) {
		return
	}
	entry := h.s.world.Entry(e)
	if !entry.HasComponent(netcomponents.NetVelocity) {
		return
	}
	vel := netcomponents.NetVelocity.Get(entry)
	step := v.Scale(1 / physicsRate)
	vel.SpeedX, vel.SpeedY, vel.SpeedZ = step.X, step.Y, step.Z
}

func (h *hookHost) OverridePrediction(e donburi.Entity) {
	if sess, ok := h.s.sessions.ByEntity(e); ok {
		sess.Physics.Override = true
	}
}

func (h *hookHost) Aim(e donburi.Entity) (gamemath.Vec3, gamemath.Vec3) {
	sess, ok := h.s.sessions.ByEntity(e)
	if !ok {
		return gamemath.Vec3{}, gamemath.V3(1, 0, 0)
	}
	pp := sess.Physics
	origin := h.Origin(e)
	dir := gamemath.AimDirection(float64(pp.Facing), pp.MoveUpPressed, pp.CrouchPressed, pp.Direction != 0)
	return origin, dir
}

func (h *hookHost) SpawnProjectile(owner donburi.Entity, origin, velocity gamemath.Vec3) (donburi.Entity, bool) {
	s := h.s
	body := s.world.Create(netcomponents.NetHook, tags.Hook)
	netcomponents.NetHook.Set(s.world.Entry(body), &netcomponents.NetHookData{
		X:              origin.X,
		Y:              origin.Y,
		Z:              origin.Z,
		OwnerNetworkID: s.netID(owner),
		State:          netconfig.HookFlying,
	})

	hp := newHookPhysics(s.level, body, owner, origin, config.Hook.Size)
	hp.Vel = velocity
	s.hookBodies[body] = hp

	if s.networked {
		if err := srvsync.NetworkSync(s.world, &body, srvsync.WithInterp(netcomponents.NetHook)); err != nil {
			log.Printf("[hook] failed to sync hook: %v", err)
			h.FreeProjectile(body)
			return body, false
		}
	}
	return body, true
}

func (h *hookHost) ProjectileOrigin(p donburi.Entity) gamemath.Vec3 {
	if hp, ok := h.s.hookBodies[p]; ok {
		return hp.origin()
	}
	return gamemath.Vec3{}
}

func (h *hookHost) SetProjectileOrigin(p donburi.Entity, origin gamemath.Vec3) {
	if hp, ok := h.s.hookBodies[p]; ok {
		hp.moveTo(origin)
	}
}

func (h *hookHost) StopProjectile(p donburi.Entity) {
	if hp, ok := h.s.hookBodies[p]; ok {
		hp.Vel = gamemath.Vec3{}
		hp.Stopped = true
	}
}

func (h *hookHost) FreeProjectile(p donburi.Entity) {
	if hp, ok := h.s.hookBodies[p]; ok {
		removeHookPhysics(h.s.level, hp)
		delete(h.s.hookBodies, p)
	}
	if h.s.world.Valid(p) {
		h.s.world.Remove(p)
	}
}

// Chain sends the chain effect to every player near either end.
func (h *hookHost) Chain(owner donburi.Entity, from, to gamemath.Vec3) {
	msg := messages.ChainEffectEvent{
		OwnerNetworkID: h.s.netID(owner),
		FromX:          from.X,
		FromY:          from.Y,
		FromZ:          from.Z,
		ToX:            to.X,
		ToY:            to.Y,
		ToZ:            to.Z,
	}
	radius := config.Hook.EffectRadius
	for _, sess := range h.s.sessions.All() {
		at := h.Origin(sess.Entity)
		if gamemath.Distance(at, from) <= radius || gamemath.Distance(at, to) <= radius {
			h.s.send(sess, msg)
		}
	}
}
