package hook

import (
	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/yohamta/donburi"
)

// System tracks every player's hook. It is not safe for concurrent use; all
// calls must come from the simulation goroutine.
type System struct {
	world   World
	effects Effects
	cfg     *config.HookConfig
	links   attachments
}

// NewSystem creates a hook system. cfg is read on every call, so changes to
// it take effect on the next tick.
func NewSystem(world World, effects Effects, cfg *config.HookConfig) *System {
	if cfg == nil {
		cfg = &config.Hook
	}
	return &System{
		world:   world,
		effects: effects,
		cfg:     cfg,
		links:   newAttachments(),
	}
}

// Connect registers a player. Calling it for a known player is a no-op.
func (s *System) Connect(player donburi.Entity) {
	if s.links.slot(player) != nil {
		return
	}
	s.links.slots[player] = &slot{}
}

// Disconnect releases everything tied to player and forgets it.
func (s *System) Disconnect(player donburi.Entity) {
	s.Cleanup(player)
	delete(s.links.slots, player)
}

// Connected reports whether player has been registered.
func (s *System) Connected(player donburi.Entity) bool {
	return s.links.slot(player) != nil
}

// Fire releases the player's current hook, if any, and launches a new one.
// Dead, frozen or unknown players are ignored.
func (s *System) Fire(player donburi.Entity) {
	sl := s.links.slot(player)
	if sl == nil || !s.world.Alive(player) {
		return
	}
	if !sl.hook.IsZero() {
		s.release(sl.hook)
	}

	origin, dir := s.world.Aim(player)
	body, ok := s.world.SpawnProjectile(player, origin, dir.Scale(s.cfg.Speed))
	if !ok {
		return
	}
	s.links.link(player, body, origin)
}

// Drop releases the player's hook.
func (s *System) Drop(player donburi.Entity) {
	if sl := s.links.slot(player); sl != nil && !sl.hook.IsZero() {
		s.release(sl.hook)
	}
}

// SetTension changes the player's tension mode. It is kept while no hook is
// attached but only matters once one is.
func (s *System) SetTension(player donburi.Entity, t Tension) {
	if sl := s.links.slot(player); sl != nil {
		sl.tension = t
	}
}

// Tension returns the player's tension mode.
func (s *System) Tension(player donburi.Entity) Tension {
	if sl := s.links.slot(player); sl != nil {
		return sl.tension
	}
	return TensionNormal
}

// HookOf returns the handle of the player's live hook.
func (s *System) HookOf(player donburi.Entity) (Handle, bool) {
	sl := s.links.slot(player)
	if sl == nil || sl.hook.IsZero() {
		return Handle{}, false
	}
	return sl.hook, true
}

// State returns the state of the player's hook.
func (s *System) State(player donburi.Entity) State {
	h, ok := s.HookOf(player)
	if !ok {
		return Detached
	}
	return s.links.get(h).state
}

// Hook returns a view of the hook addressed by h.
func (s *System) Hook(h Handle) (Hook, bool) {
	rec := s.links.get(h)
	if rec == nil {
		return Hook{}, false
	}
	return Hook{
		Owner:     rec.owner,
		Body:      rec.body,
		Target:    rec.target,
		HasTarget: rec.hasTarget,
		State:     rec.state,
		Origin:    rec.origin,
	}, true
}

// Handles returns every live hook.
func (s *System) Handles() []Handle {
	return s.links.live()
}

// Live returns the number of live hooks.
func (s *System) Live() int {
	return len(s.links.live())
}

// Touch is the collision entry point: the host calls it when the projectile
// of h hits other. Hooks ignore their owner, and players while wall-only mode
// is on; anything else stops the hook and attaches it.
func (s *System) Touch(h Handle, other donburi.Entity) {
	rec := s.links.get(h)
	if rec == nil || rec.state != Flying {
		return
	}
	if other == rec.owner {
		return
	}
	isPlayer := s.world.IsPlayer(other)
	if isPlayer && s.cfg.WallOnly {
		return
	}

	s.world.StopProjectile(rec.body)
	rec.origin = s.world.ProjectileOrigin(rec.body)
	rec.state = Attached
	rec.target = other
	rec.hasTarget = true
	rec.targetPlayer = isPlayer
	if isPlayer {
		rec.offset = rec.origin.Sub(s.world.Origin(other))
	}
}

// Update runs Think for every live hook.
func (s *System) Update() {
	for _, h := range s.links.live() {
		s.Think(h)
	}
}

// Think is the per-tick driver of one hook: it releases the hook when its
// owner is gone or the chain is too long, pulls the owner while attached and
// emits the chain effect.
func (s *System) Think(h Handle) {
	rec := s.links.get(h)
	if rec == nil {
		return
	}
	if !s.world.Alive(rec.owner) {
		s.release(h)
		return
	}

	if rec.state == Attached && rec.targetPlayer {
		if !s.world.Valid(rec.target) {
			s.release(h)
			return
		}
		s.world.SetProjectileOrigin(rec.body, s.world.Origin(rec.target).Add(rec.offset))
	}

	// Read both ends once so the force never mixes ticks.
	ownerPos := s.world.Origin(rec.owner)
	hookPos := s.world.ProjectileOrigin(rec.body)
	rec.origin = hookPos

	res := Step(StepInput{
		Owner:     ownerPos,
		Hook:      hookPos,
		Attached:  rec.state == Attached,
		Tension:   s.Tension(rec.owner),
		MinLength: s.cfg.MinLength,
		MaxLength: s.cfg.MaxLength,
		Pull:      s.cfg.PullCoefficient,
	})
	if res.Exceeded {
		s.release(h)
		return
	}
	if res.Taut {
		s.world.SetVelocity(rec.owner, s.world.Velocity(rec.owner).Add(res.Impulse))
		s.world.OverridePrediction(rec.owner)
	}

	if s.effects != nil {
		s.effects.Chain(rec.owner, ownerPos, hookPos)
	}
}

// release frees the projectile of h and detaches it from its owner.
func (s *System) release(h Handle) {
	rec, ok := s.links.unlink(h)
	if !ok {
		return
	}
	s.world.FreeProjectile(rec.body)
	if s.world.Valid(rec.owner) {
		s.world.SetVelocity(rec.owner, gamemath.Vec3{})
	}
}
