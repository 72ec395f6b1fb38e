package hook

import "github.com/yohamta/donburi"

// Cleanup tears down every hook tied to player: its own hook and any hook
// owned by or attached to it. The host calls it when a player dies, freezes,
// disconnects or is removed. Calling it again is a no-op.
//
// The sweep visits every live hook, which is fine for an event that happens
// a few times per round and never per tick.
func (s *System) Cleanup(player donburi.Entity) {
	if sl := s.links.slot(player); sl != nil {
		if !sl.hook.IsZero() {
			s.release(sl.hook)
		}
		sl.tension = TensionNormal
	}

	for _, h := range s.links.live() {
		rec := s.links.get(h)
		if rec == nil {
			continue
		}
		if rec.owner == player || (rec.hasTarget && rec.target == player) {
			s.release(h)
		}
	}
}
