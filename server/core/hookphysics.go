package core

import (
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/automoto/freezetag/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// HookPhysics holds server-side physics state for a hook projectile.
type HookPhysics struct {
	Object  *resolv.Object
	Vel     gamemath.Vec3 // units/second
	Owner   donburi.Entity
	Stopped bool
}

func newHookPhysics(level *ServerLevel, body, owner donburi.Entity, origin gamemath.Vec3, size float64) *HookPhysics {
	obj := resolv.NewObject(origin.X-size/2, origin.Y-size/2, size, size, tags.ResolvHook)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = body
	level.Space.Add(obj)

	return &HookPhysics{
		Object: obj,
		Owner:  owner,
	}
}

func (hp *HookPhysics) origin() gamemath.Vec3 {
	return gamemath.V3(hp.Object.X+hp.Object.W/2, hp.Object.Y+hp.Object.H/2, 0)
}

func (hp *HookPhysics) moveTo(origin gamemath.Vec3) {
	hp.Object.X = origin.X - hp.Object.W/2
	hp.Object.Y = origin.Y - hp.Object.H/2
	hp.Object.Update()
}

func removeHookPhysics(level *ServerLevel, hp *HookPhysics) {
	level.Space.Remove(hp.Object)
}

// stepHooks runs one 60 Hz sub-step for every flying hook and reports
// touches to the hook system. Players are checked before level geometry.
func (s *Server) stepHooks() {
	for body, hp := range s.hookBodies {
		if hp.Stopped {
			continue
		}
		h, ok := s.hooks.HookOf(hp.Owner)
		if !ok {
			continue
		}
		if hk, ok := s.hooks.Hook(h); !ok || hk.Body != body {
			continue
		}

		hp.moveTo(hp.origin().Add(hp.Vel.Scale(1 / physicsRate)))

		check := hp.Object.Check(0, 0, tags.ResolvPlayer, tags.ResolvSolid)
		if check == nil {
			continue
		}
		for _, obj := range check.ObjectsByTags(tags.ResolvPlayer) {
			if e, ok := obj.Data.(donburi.Entity); ok {
				s.hooks.Touch(h, e)
			}
			if hp.Stopped {
				break
			}
		}
		if !hp.Stopped && len(check.ObjectsByTags(tags.ResolvSolid)) > 0 {
			s.hooks.Touch(h, s.worldspawn)
		}
	}
}
