// Package freeze holds the freeze tag rules: the team table, starting
// loadouts, freezing on lethal damage and thawing by teammate contact.
package freeze

import (
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/yohamta/donburi"
)

// TeamInfo is one row of the team table.
type TeamInfo struct {
	ID         netconfig.TeamID
	Name       string
	Skin       string
	Score      int
	Players    int
	Frozen     int
	Eliminated bool
}

var teamDefs = [netconfig.MaxTeams]struct {
	name, skin string
}{
	{"Red", "male/ctf_r"},
	{"Blue", "male/ctf_b"},
	{"Green", "male/ctf_g"},
	{"Yellow", "male/ctf_y"},
}

// Teams maps players to teams. The zero value is not usable; call NewTeams.
type Teams struct {
	info    []TeamInfo
	members map[donburi.Entity]netconfig.TeamID
}

// NewTeams creates a table with n teams, clamped to [2, MaxTeams].
func NewTeams(n int) *Teams {
	t := &Teams{}
	t.Init(n)
	return t
}

// Init resets the table to n empty teams.
func (t *Teams) Init(n int) {
	if n < 2 {
		n = 2
	}
	if n > netconfig.MaxTeams {
		n = netconfig.MaxTeams
	}
	t.info = make([]TeamInfo, n)
	for i := range t.info {
		t.info[i] = TeamInfo{
			ID:   netconfig.TeamID(i),
			Name: teamDefs[i].name,
			Skin: teamDefs[i].skin,
		}
	}
	t.members = make(map[donburi.Entity]netconfig.TeamID)
}

// Len returns the number of teams in play.
func (t *Teams) Len() int {
	return len(t.info)
}

// Info returns the row of team id.
func (t *Teams) Info(id netconfig.TeamID) (TeamInfo, bool) {
	if !t.valid(id) {
		return TeamInfo{}, false
	}
	return t.info[id], true
}

// All returns a copy of every row.
func (t *Teams) All() []TeamInfo {
	out := make([]TeamInfo, len(t.info))
	copy(out, t.info)
	return out
}

// AutoAssign picks the team with the fewest players; ties go to the lowest id.
func (t *Teams) AutoAssign() netconfig.TeamID {
	best := netconfig.TeamID(0)
	for i := range t.info {
		if t.info[i].Players < t.info[best].Players {
			best = netconfig.TeamID(i)
		}
	}
	return best
}

// Join moves player to team, leaving its previous team. TeamNone makes the
// player a spectator.
func (t *Teams) Join(player donburi.Entity, team netconfig.TeamID) {
	t.Leave(player)
	if !t.valid(team) {
		return
	}
	t.members[player] = team
	t.info[team].Players++
}

// Leave removes player from its team.
func (t *Teams) Leave(player donburi.Entity) {
	team, ok := t.members[player]
	if !ok {
		return
	}
	delete(t.members, player)
	t.info[team].Players--
}

// TeamOf returns the player's team, or TeamNone for spectators.
func (t *Teams) TeamOf(player donburi.Entity) netconfig.TeamID {
	if team, ok := t.members[player]; ok {
		return team
	}
	return netconfig.TeamNone
}

// SameTeam reports whether a and b play for the same team.
func (t *Teams) SameTeam(a, b donburi.Entity) bool {
	ta, tb := t.TeamOf(a), t.TeamOf(b)
	return ta != netconfig.TeamNone && ta == tb
}

// Members returns the players of team.
func (t *Teams) Members(team netconfig.TeamID) []donburi.Entity {
	var out []donburi.Entity
	for p, id := range t.members {
		if id == team {
			out = append(out, p)
		}
	}
	return out
}

// Skin returns the player model of team.
func (t *Teams) Skin(team netconfig.TeamID) string {
	if !t.valid(team) {
		return "male/grunt"
	}
	return t.info[team].Skin
}

// UpdateCounts recomputes player and frozen counts and the eliminated flags.
// frozen reports whether a player is frozen.
func (t *Teams) UpdateCounts(frozen func(donburi.Entity) bool) {
	for i := range t.info {
		t.info[i].Players = 0
		t.info[i].Frozen = 0
	}
	for p, team := range t.members {
		t.info[team].Players++
		if frozen(p) {
			t.info[team].Frozen++
		}
	}
	for i := range t.info {
		t.info[i].Eliminated = t.info[i].Players > 0 && t.info[i].Frozen == t.info[i].Players
	}
}

// AddScore credits team with a round win.
func (t *Teams) AddScore(team netconfig.TeamID) {
	if t.valid(team) {
		t.info[team].Score++
	}
}

func (t *Teams) valid(id netconfig.TeamID) bool {
	return id >= 0 && int(id) < len(t.info)
}
