// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// StateID identifies a player state for animation and logic.
type StateID int

const (
	StateNone StateID = -1

	Idle StateID = iota
	Running
	Jump
	Hooked // being pulled by an attached hook
	Frozen
	Thawing
	Spectating
)

var stateNames = map[StateID]string{
	Idle:       "idle",
	Running:    "running",
	Jump:       "jump",
	Hooked:     "hooked",
	Frozen:     "frozen",
	Thawing:    "thawing",
	Spectating: "spectating",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// TeamID identifies a freeze tag team.
type TeamID int

const (
	TeamNone TeamID = -1 // spectator

	TeamRed TeamID = iota - 1
	TeamBlue
	TeamGreen
	TeamYellow
)

// MaxTeams is the number of teams a match can have.
const MaxTeams = 4

// Hook states as sent over the wire.
const (
	HookDetached = 0
	HookFlying   = 1
	HookAttached = 2
)

// MatchStateID represents the current state of a round.
type MatchStateID int

const (
	MatchStateWaiting  MatchStateID = iota // Fewer than two populated teams
	MatchStatePlaying                      // Round in progress
	MatchStateFinished                     // Round won, waiting for the mass thaw
)

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionJump
	ActionCrouch
	ActionHook // held: fires on press, drops on release
	ActionMenu
	ActionCount // Must be last - used for array sizing
)
