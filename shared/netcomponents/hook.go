package netcomponents

import "github.com/yohamta/donburi"

type NetHookData struct {
	X, Y, Z         float64
	OwnerNetworkID  uint // NetworkId of owning player
	TargetNetworkID uint // NetworkId of the attached player, 0 for walls or while flying
	State           int  // netconfig.Hook*
}

var NetHook = donburi.NewComponentType[NetHookData]()

// LerpNetHook interpolates between two hook states
func LerpNetHook(from, to NetHookData, t float64) *NetHookData {
	return &NetHookData{
		X:               from.X + (to.X-from.X)*t,
		Y:               from.Y + (to.Y-from.Y)*t,
		Z:               from.Z + (to.Z-from.Z)*t,
		OwnerNetworkID:  to.OwnerNetworkID,
		TargetNetworkID: to.TargetNetworkID,
		State:           to.State,
	}
}
