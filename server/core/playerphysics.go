package core

import (
	"github.com/automoto/freezetag/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

const (
	playerWidth  = 16.0
	playerHeight = 40.0
)

// PlayerPhysics holds per-player physics state on the server. This is not a
// donburi component; it exists only on the server and is never synced.
type PlayerPhysics struct {
	Object   *resolv.Object
	OnGround bool
	InSpace  bool // false while spectating

	// Latest input snapshot (written by onPlayerInput, read by physics tick)
	Direction      int
	Facing         int
	JumpPressed    bool
	JumpWasPressed bool // previous frame, for edge detection
	MoveUpPressed  bool
	CrouchPressed  bool
	HookPressed    bool
	HookWasPressed bool
	MenuPressed    bool
	MenuWasPressed bool

	// Set by the hook when it pulled the player; friction and the speed
	// clamp are skipped for the next physics tick.
	Override bool

	// Players landed on during this tick
	Stomped []donburi.Entity

	// Last processed input sequence (for client-side prediction reconciliation)
	LastInputSeq uint32
}

func newPlayerPhysics(level *ServerLevel, entity donburi.Entity, x, y float64) *PlayerPhysics {
	obj := resolv.NewObject(x, y, playerWidth, playerHeight, tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, playerWidth, playerHeight))
	obj.Data = entity
	level.Space.Add(obj)

	return &PlayerPhysics{
		Object:  obj,
		InSpace: true,
		Facing:  1,
	}
}

func (pp *PlayerPhysics) center() (float64, float64) {
	return pp.Object.X + pp.Object.W/2, pp.Object.Y + pp.Object.H/2
}

// place moves the player so its feet rest on the bottom of a spawn marker.
func (pp *PlayerPhysics) place(x, y float64) {
	pp.Object.X = x
	pp.Object.Y = y + 16 - pp.Object.H
	pp.Object.Update()
	pp.OnGround = false
}

func (pp *PlayerPhysics) enterSpace(level *ServerLevel) {
	if !pp.InSpace {
		level.Space.Add(pp.Object)
		pp.InSpace = true
	}
}

func (pp *PlayerPhysics) leaveSpace(level *ServerLevel) {
	if pp.InSpace {
		level.Space.Remove(pp.Object)
		pp.InSpace = false
	}
}
