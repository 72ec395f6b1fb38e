package core

import (
	"fmt"
	"log"
	"time"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/freeze"
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/yohamta/donburi"
)

// updateRules applies this tick's damage, advances thaws and reacts to the
// round outcome.
func (s *Server) updateRules(dt time.Duration) {
	for _, sess := range s.sessions.All() {
		pp := sess.Physics
		for _, victim := range pp.Stomped {
			if s.host.Alive(sess.Entity) && !s.rules.Teams.SameTeam(sess.Entity, victim) {
				s.damage(victim, sess.Entity, config.Freeze.StompDamage)
			}
		}
		pp.Stomped = pp.Stomped[:0]

		if pp.InSpace && pp.Object.Y > float64(s.level.MapHeight) {
			s.damage(sess.Entity, sess.Entity, s.rules.Health(sess.Entity))
			s.respawn(sess)
		}
	}

	for _, ev := range s.rules.Update(dt, s.thawContacts) {
		s.handleRuleEvent(ev)
	}
}

// damage hurts victim and handles a resulting freeze.
func (s *Server) damage(victim, attacker donburi.Entity, amount int) {
	if !s.rules.Damage(victim, amount) {
		return
	}
	s.hooks.Cleanup(victim)
	s.host.SetVelocity(victim, gamemath.Vec3{})

	s.broadcastEvent(messages.FreezeEvent{VictimNetworkID: s.netID(victim)})

	victimName := s.playerName(victim)
	if attacker == victim {
		s.broadcastEvent(messages.PrintMessage{Text: victimName + " froze"})
	} else {
		s.broadcastEvent(messages.PrintMessage{Text: victimName + " was frozen by " + s.playerName(attacker)})
	}
}

// thawContacts returns the players close enough to frozen to thaw it.
func (s *Server) thawContacts(frozen donburi.Entity) []donburi.Entity {
	sess, ok := s.sessions.ByEntity(frozen)
	if !ok || !sess.Physics.InSpace {
		return nil
	}
	at := s.host.Origin(frozen)

	var out []donburi.Entity
	for _, other := range s.sessions.All() {
		if other.Entity == frozen || !other.Physics.InSpace {
			continue
		}
		if gamemath.Distance(at, s.host.Origin(other.Entity)) <= config.Freeze.ThawRadius {
			out = append(out, other.Entity)
		}
	}
	return out
}

func (s *Server) handleRuleEvent(ev freeze.Event) {
	switch ev.Kind {
	case freeze.EventThawed:
		s.broadcastEvent(messages.ThawEvent{
			PlayerNetworkID:  s.netID(ev.Player),
			RescuerNetworkID: s.netID(ev.By),
		})
		s.broadcastEvent(messages.PrintMessage{
			Text: s.playerName(ev.Player) + " was thawed by " + s.playerName(ev.By),
		})

	case freeze.EventTeamEliminated:
		s.broadcastEvent(messages.TeamEliminatedEvent{Team: int(ev.Team)})
		s.broadcastEvent(messages.PrintMessage{Text: s.teamName(ev.Team) + " team is frozen"})

	case freeze.EventRoundWon:
		log.Printf("[rules] %s team wins the round", s.teamName(ev.Team))
		s.broadcastEvent(messages.RoundEvent{State: int(netconfig.MatchStateFinished), Winner: int(ev.Team)})
		s.broadcastEvent(messages.PrintMessage{Text: s.teamName(ev.Team) + " team wins the round!"})

	case freeze.EventRoundDraw:
		log.Println("[rules] round drawn")
		s.broadcastEvent(messages.RoundEvent{State: int(netconfig.MatchStateFinished), Winner: int(netconfig.TeamNone)})
		s.broadcastEvent(messages.PrintMessage{Text: "Round drawn"})

	case freeze.EventRoundRestart:
		for _, sess := range s.sessions.All() {
			if s.rules.Teams.TeamOf(sess.Entity) == netconfig.TeamNone {
				continue
			}
			s.hooks.Cleanup(sess.Entity)
			s.respawn(sess)
		}
		s.broadcastEvent(messages.RoundEvent{State: int(s.rules.State()), Winner: int(s.rules.Winner())})
	}
}

func (s *Server) playerName(e donburi.Entity) string {
	if sess, ok := s.sessions.ByEntity(e); ok {
		return sess.Name
	}
	return "someone"
}

func (s *Server) teamName(team netconfig.TeamID) string {
	if team == netconfig.TeamNone {
		return "spectator"
	}
	if info, ok := s.rules.Teams.Info(team); ok {
		return info.Name
	}
	return fmt.Sprintf("team %d", team)
}
