package netcomponents

import (
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	StateID      netconfig.StateID
	Direction    int // -1 left, 1 right
	Health       int
	Armor        int
	Team         netconfig.TeamID
	Skin         string
	Weapon       string
	ThawProgress float64 // 0-1 while a teammate is thawing this player
	HookTension  int     // hook.Tension of the player

	// Set on ticks where a hook impulse moved the player; the client must not
	// predict its own movement for those ticks.
	PredictionOverride bool

	LastSequence uint32 // Last input sequence processed by the server (for prediction reconciliation)
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
