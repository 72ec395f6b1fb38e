// Package leveldata provides TMX level parsing for the server.
// It has no dependencies on donburi or resolv, pure data only.
package leveldata

// NoTeam marks a spawn point any team may use.
const NoTeam = -1

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	SolidRects  []SolidRect
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
}

// SolidRect is a horizontal run of solid tiles.
type SolidRect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
	Team  int // team index, NoTeam for shared spawns
}

// SpawnsFor returns the spawn points usable by team: its own points, or the
// shared ones when the level defines none for it.
func (d *CollisionData) SpawnsFor(team int) []SpawnPoint {
	var own, shared []SpawnPoint
	for _, sp := range d.SpawnPoints {
		switch {
		case team != NoTeam && sp.Team == team:
			own = append(own, sp)
		case sp.Team == NoTeam:
			shared = append(shared, sp)
		}
	}
	if len(own) > 0 {
		return own
	}
	if len(shared) > 0 {
		return shared
	}
	return d.SpawnPoints
}
