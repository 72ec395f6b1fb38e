package core

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/automoto/freezetag/shared/leveldata"
	"github.com/automoto/freezetag/tags"
	"github.com/solarlune/resolv"
)

// ServerLevel holds the server's collision space and spawn data for a level.
type ServerLevel struct {
	Name      string
	Space     *resolv.Space
	Data      *leveldata.CollisionData
	MapWidth  int
	MapHeight int
}

// NewServerLevel builds a resolv.Space from parsed collision data.
func NewServerLevel(name string, data *leveldata.CollisionData) *ServerLevel {
	space := resolv.NewSpace(data.MapWidth, data.MapHeight, 16, 16)

	for _, r := range data.SolidRects {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		space.Add(obj)
	}

	log.Printf("[level] loaded %s: %d solid rects, %d spawn points, %dx%d map",
		name, len(data.SolidRects), len(data.SpawnPoints), data.MapWidth, data.MapHeight)

	return &ServerLevel{
		Name:      name,
		Space:     space,
		Data:      data,
		MapWidth:  data.MapWidth,
		MapHeight: data.MapHeight,
	}
}

// LoadAllServerLevels loads all .tmx levels from the given assets directory,
// returning a map of ServerLevel keyed by stem name plus a sorted name list.
func LoadAllServerLevels(assetsDir string) (map[string]*ServerLevel, []string, error) {
	collisionMap, names, err := leveldata.LoadAllLevels(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*ServerLevel, len(names))
	for _, name := range names {
		levels[name] = NewServerLevel(name, collisionMap[name])
	}

	return levels, names, nil
}

// LoadServerLevel loads every level under assetsDir and returns the one
// named name. An unknown name is an error listing the available levels.
func LoadServerLevel(assetsDir, name string) (*ServerLevel, error) {
	levels, names, err := LoadAllServerLevels(assetsDir)
	if err != nil {
		return nil, err
	}
	lvl, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q (available: %s)", name, strings.Join(names, ", "))
	}
	return lvl, nil
}

// spawnFor picks a spawn point for team, cycling through the candidates.
func (l *ServerLevel) spawnFor(team int, n int) leveldata.SpawnPoint {
	spawns := l.Data.SpawnsFor(team)
	if len(spawns) == 0 {
		return leveldata.SpawnPoint{X: float64(l.MapWidth) / 2, Y: 0}
	}
	return spawns[n%len(spawns)]
}
