package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from TMX files.
const (
	SolidLayer = "solid"
	SpawnGroup = "PlayerSpawn"
)

var teamNames = map[string]int{
	"red":    0,
	"blue":   1,
	"green":  2,
	"yellow": 3,
}

// LoadCollisionData parses a TMX file and returns collision data (solid tiles
// and player spawn points). It takes an fs.FS so callers can pass embed.FS
// or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &CollisionData{
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
	}

	// Merge each row's consecutive solid tiles into one rect
	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			runStart := -1
			for x := 0; x <= levelMap.Width; x++ {
				solid := x < levelMap.Width && !layer.Tiles[y*levelMap.Width+x].IsNil()
				if solid && runStart < 0 {
					runStart = x
				}
				if !solid && runStart >= 0 {
					data.SolidRects = append(data.SolidRects, SolidRect{
						X: float64(runStart) * tileW,
						Y: float64(y) * tileH,
						W: float64(x-runStart) * tileW,
						H: tileH,
					})
					runStart = -1
				}
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			team := NoTeam
			if name := strings.ToLower(o.Properties.GetString("team")); name != "" {
				id, ok := teamNames[name]
				if !ok {
					return nil, fmt.Errorf("spawn %d in %s: unknown team %q", o.ID, tmxPath, name)
				}
				team = id
			}
			data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
				Team:  team,
			})
		}
	}
	if len(data.SpawnPoints) == 0 {
		return nil, fmt.Errorf("level %s has no %s objects", tmxPath, SpawnGroup)
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads collision
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
