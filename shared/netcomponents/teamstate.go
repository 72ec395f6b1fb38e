package netcomponents

import (
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetTeamInfo struct {
	Name       string
	Score      int
	Players    int
	Frozen     int
	Eliminated bool
}

// NetTeamStateData is a singleton carrying the scoreboard.
type NetTeamStateData struct {
	Teams      []NetTeamInfo
	MatchState netconfig.MatchStateID
	Winner     netconfig.TeamID
}

var NetTeamState = donburi.NewComponentType[NetTeamStateData]()
