package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Hook       = donburi.NewTag().SetName("Hook")
	WorldSpawn = donburi.NewTag().SetName("WorldSpawn")
	TeamState  = donburi.NewTag().SetName("TeamState")
)

// Resolv tags for physics collision
const (
	ResolvSolid  = "solid"
	ResolvPlayer = "Player"
	ResolvHook   = "Hook"
)
