package messages

// ChainEffectEvent draws a hook chain between two points for one tick.
type ChainEffectEvent struct {
	OwnerNetworkID uint
	FromX, FromY   float64
	FromZ          float64
	ToX, ToY       float64
	ToZ            float64
}

// FreezeEvent is broadcast when a player is frozen by lethal damage
type FreezeEvent struct {
	VictimNetworkID uint
}

// ThawEvent is broadcast when a teammate finishes thawing a player
type ThawEvent struct {
	PlayerNetworkID  uint
	RescuerNetworkID uint
}

// TeamEliminatedEvent is broadcast when every member of a team is frozen
type TeamEliminatedEvent struct {
	Team int
}

// RoundEvent is broadcast when a round is won, drawn or restarted
type RoundEvent struct {
	State  int // netconfig.MatchStateID
	Winner int // netconfig.TeamID, -1 for a draw
}

// LayoutMessage replaces the client's HUD layout; an empty layout hides it.
type LayoutMessage struct {
	Layout string
}

// PrintMessage is a line of text for the client's console.
type PrintMessage struct {
	Text string
}
