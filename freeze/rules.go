package freeze

import (
	"time"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// EventKind identifies a rule outcome the host has to react to.
type EventKind int

const (
	EventThawed EventKind = iota
	EventTeamEliminated
	EventRoundWon
	EventRoundDraw
	EventRoundRestart
)

// Event is produced by Rules.Update.
type Event struct {
	Kind   EventKind
	Player donburi.Entity // thawed player
	By     donburi.Entity // teammate that completed the thaw
	Team   netconfig.TeamID
}

type playerStatus struct {
	health   int
	frozen   bool
	thaw     *gween.Tween
	thawBy   donburi.Entity
	progress float32
}

// Rules tracks health and frozen state for every player and resolves rounds.
type Rules struct {
	Teams *Teams

	cfg        *config.FreezeConfig
	status     map[donburi.Entity]*playerStatus
	state      netconfig.MatchStateID
	restartIn  time.Duration
	winner     netconfig.TeamID
	eliminated map[netconfig.TeamID]bool
}

// NewRules creates the rule set. cfg is read on every call.
func NewRules(teams *Teams, cfg *config.FreezeConfig) *Rules {
	if cfg == nil {
		cfg = &config.Freeze
	}
	return &Rules{
		Teams:      teams,
		cfg:        cfg,
		status:     make(map[donburi.Entity]*playerStatus),
		winner:     netconfig.TeamNone,
		eliminated: make(map[netconfig.TeamID]bool),
	}
}

// Spawn starts tracking player with full health.
func (r *Rules) Spawn(player donburi.Entity) {
	r.status[player] = &playerStatus{health: r.cfg.StartHealth}
}

// Remove stops tracking player.
func (r *Rules) Remove(player donburi.Entity) {
	delete(r.status, player)
}

// State returns the round state.
func (r *Rules) State() netconfig.MatchStateID {
	return r.state
}

// Winner returns the team that won the last round, TeamNone for a draw or
// while no round has finished.
func (r *Rules) Winner() netconfig.TeamID {
	return r.winner
}

// Health returns the player's health.
func (r *Rules) Health(player donburi.Entity) int {
	if st, ok := r.status[player]; ok {
		return st.health
	}
	return 0
}

// IsFrozen reports whether player is frozen.
func (r *Rules) IsFrozen(player donburi.Entity) bool {
	st, ok := r.status[player]
	return ok && st.frozen
}

// ThawProgress returns how far a frozen player's thaw is, from 0 to 1.
func (r *Rules) ThawProgress(player donburi.Entity) float64 {
	if st, ok := r.status[player]; ok {
		return float64(st.progress)
	}
	return 0
}

// Damage applies an already computed amount of damage. Lethal damage freezes
// the victim instead of killing it; the return value reports a new freeze.
// Frozen players and spectators take no damage.
func (r *Rules) Damage(victim donburi.Entity, amount int) bool {
	st, ok := r.status[victim]
	if !ok || st.frozen || amount <= 0 {
		return false
	}
	if r.Teams.TeamOf(victim) == netconfig.TeamNone {
		return false
	}

	st.health -= amount
	if st.health > 0 {
		return false
	}
	st.health = 0
	st.frozen = true
	st.thaw = nil
	st.progress = 0
	return true
}

// Update advances thaws and resolves the round. contacts returns the players
// currently touching a frozen player.
func (r *Rules) Update(dt time.Duration, contacts func(donburi.Entity) []donburi.Entity) []Event {
	var events []Event

	for p, st := range r.status {
		if !st.frozen {
			continue
		}
		rescuer, ok := r.rescuer(p, contacts(p))
		if !ok {
			st.thaw = nil
			st.progress = 0
			continue
		}
		if st.thaw == nil || st.thawBy != rescuer {
			st.thaw = gween.New(0, 1, float32(r.cfg.ThawTime.Seconds()), ease.Linear)
			st.thawBy = rescuer
		}
		progress, done := st.thaw.Update(float32(dt.Seconds()))
		st.progress = progress
		if done || r.cfg.ThawTime <= 0 {
			r.thaw(st)
			events = append(events, Event{Kind: EventThawed, Player: p, By: rescuer, Team: r.Teams.TeamOf(p)})
		}
	}

	r.Teams.UpdateCounts(r.IsFrozen)
	return append(events, r.resolveRound(dt)...)
}

// ThawAll thaws every player and restores full health.
func (r *Rules) ThawAll() {
	for _, st := range r.status {
		r.thaw(st)
	}
	r.Teams.UpdateCounts(r.IsFrozen)
}

func (r *Rules) thaw(st *playerStatus) {
	st.frozen = false
	st.health = r.cfg.StartHealth
	st.thaw = nil
	st.progress = 0
}

// rescuer returns the first unfrozen teammate among touching.
func (r *Rules) rescuer(frozen donburi.Entity, touching []donburi.Entity) (donburi.Entity, bool) {
	for _, other := range touching {
		if other == frozen || r.IsFrozen(other) {
			continue
		}
		if _, tracked := r.status[other]; !tracked {
			continue
		}
		if r.Teams.SameTeam(frozen, other) {
			return other, true
		}
	}
	var none donburi.Entity
	return none, false
}

func (r *Rules) resolveRound(dt time.Duration) []Event {
	var events []Event

	populated, standing := 0, 0
	last := netconfig.TeamNone
	for _, info := range r.Teams.All() {
		if info.Players == 0 {
			r.eliminated[info.ID] = false
			continue
		}
		populated++
		if info.Eliminated {
			if !r.eliminated[info.ID] && r.state == netconfig.MatchStatePlaying {
				events = append(events, Event{Kind: EventTeamEliminated, Team: info.ID})
			}
		} else {
			standing++
			last = info.ID
		}
		r.eliminated[info.ID] = info.Eliminated
	}

	switch r.state {
	case netconfig.MatchStateWaiting:
		if populated >= 2 {
			r.state = netconfig.MatchStatePlaying
		}

	case netconfig.MatchStatePlaying:
		switch {
		case populated < 2:
			r.state = netconfig.MatchStateWaiting
		case standing == 1:
			r.winner = last
			r.Teams.AddScore(last)
			r.state = netconfig.MatchStateFinished
			r.restartIn = r.cfg.RoundRestart
			events = append(events, Event{Kind: EventRoundWon, Team: last})
		case standing == 0:
			r.winner = netconfig.TeamNone
			r.state = netconfig.MatchStateFinished
			r.restartIn = r.cfg.RoundRestart
			events = append(events, Event{Kind: EventRoundDraw, Team: netconfig.TeamNone})
		}

	case netconfig.MatchStateFinished:
		r.restartIn -= dt
		if r.restartIn <= 0 {
			r.ThawAll()
			for id := range r.eliminated {
				r.eliminated[id] = false
			}
			r.state = netconfig.MatchStateWaiting
			if populated >= 2 {
				r.state = netconfig.MatchStatePlaying
			}
			events = append(events, Event{Kind: EventRoundRestart, Team: r.winner})
		}
	}

	return events
}
