package netcomponents

import "github.com/yohamta/donburi"

// NetVelocityData is in world units per 60 Hz physics step.
type NetVelocityData struct {
	SpeedX, SpeedY, SpeedZ float64
}

var NetVelocity = donburi.NewComponentType[NetVelocityData]()

// LerpNetVelocity interpolates between two velocities
func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	return &NetVelocityData{
		SpeedX: from.SpeedX + (to.SpeedX-from.SpeedX)*t,
		SpeedY: from.SpeedY + (to.SpeedY-from.SpeedY)*t,
		SpeedZ: from.SpeedZ + (to.SpeedZ-from.SpeedZ)*t,
	}
}
