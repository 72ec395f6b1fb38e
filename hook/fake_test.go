package hook

import (
	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/yohamta/donburi"
)

var testTag = donburi.NewTag().SetName("test")

type fakeEntity struct {
	player    bool
	alive     bool
	origin    gamemath.Vec3
	velocity  gamemath.Vec3
	aimDir    gamemath.Vec3
	overrides int
}

type fakeProjectile struct {
	owner    donburi.Entity
	origin   gamemath.Vec3
	velocity gamemath.Vec3
	stopped  bool
}

type chainCall struct {
	owner    donburi.Entity
	from, to gamemath.Vec3
}

type fakeWorld struct {
	world       donburi.World
	entities    map[donburi.Entity]*fakeEntity
	projectiles map[donburi.Entity]*fakeProjectile
	freed       map[donburi.Entity]int
	chains      []chainCall
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		world:       donburi.NewWorld(),
		entities:    make(map[donburi.Entity]*fakeEntity),
		projectiles: make(map[donburi.Entity]*fakeProjectile),
		freed:       make(map[donburi.Entity]int),
	}
}

func (f *fakeWorld) addPlayer(origin gamemath.Vec3) donburi.Entity {
	e := f.world.Create(testTag)
	f.entities[e] = &fakeEntity{player: true, alive: true, origin: origin, aimDir: gamemath.V3(1, 0, 0)}
	return e
}

func (f *fakeWorld) addWall() donburi.Entity {
	e := f.world.Create(testTag)
	f.entities[e] = &fakeEntity{}
	return e
}

func (f *fakeWorld) remove(e donburi.Entity) {
	delete(f.entities, e)
	f.world.Remove(e)
}

func (f *fakeWorld) Valid(e donburi.Entity) bool {
	if _, ok := f.entities[e]; ok {
		return true
	}
	_, ok := f.projectiles[e]
	return ok
}

func (f *fakeWorld) Alive(e donburi.Entity) bool {
	ent, ok := f.entities[e]
	return ok && ent.player && ent.alive
}

func (f *fakeWorld) IsPlayer(e donburi.Entity) bool {
	ent, ok := f.entities[e]
	return ok && ent.player
}

func (f *fakeWorld) Origin(e donburi.Entity) gamemath.Vec3 {
	if ent, ok := f.entities[e]; ok {
		return ent.origin
	}
	return gamemath.Vec3{}
}

func (f *fakeWorld) Velocity(e donburi.Entity) gamemath.Vec3 {
	if ent, ok := f.entities[e]; ok {
		return ent.velocity
	}
	return gamemath.Vec3{}
}

func (f *fakeWorld) SetVelocity(e donburi.Entity, v gamemath.Vec3) {
	if ent, ok := f.entities[e]; ok {
		ent.velocity = v
	}
}

func (f *fakeWorld) OverridePrediction(e donburi.Entity) {
	if ent, ok := f.entities[e]; ok {
		ent.overrides++
	}
}

func (f *fakeWorld) Aim(e donburi.Entity) (gamemath.Vec3, gamemath.Vec3) {
	ent := f.entities[e]
	return ent.origin, ent.aimDir
}

func (f *fakeWorld) SpawnProjectile(owner donburi.Entity, origin, velocity gamemath.Vec3) (donburi.Entity, bool) {
	e := f.world.Create(testTag)
	f.projectiles[e] = &fakeProjectile{owner: owner, origin: origin, velocity: velocity}
	return e, true
}

func (f *fakeWorld) ProjectileOrigin(p donburi.Entity) gamemath.Vec3 {
	if pr, ok := f.projectiles[p]; ok {
		return pr.origin
	}
	return gamemath.Vec3{}
}

func (f *fakeWorld) SetProjectileOrigin(p donburi.Entity, origin gamemath.Vec3) {
	if pr, ok := f.projectiles[p]; ok {
		pr.origin = origin
	}
}

func (f *fakeWorld) StopProjectile(p donburi.Entity) {
	if pr, ok := f.projectiles[p]; ok {
		pr.velocity = gamemath.Vec3{}
		pr.stopped = true
	}
}

func (f *fakeWorld) FreeProjectile(p donburi.Entity) {
	f.freed[p]++
	if _, ok := f.projectiles[p]; ok {
		delete(f.projectiles, p)
		f.world.Remove(p)
	}
}

func (f *fakeWorld) Chain(owner donburi.Entity, from, to gamemath.Vec3) {
	f.chains = append(f.chains, chainCall{owner: owner, from: from, to: to})
}

func testConfig() *config.HookConfig {
	return &config.HookConfig{
		MaxLength:       1000,
		MinLength:       40,
		Speed:           900,
		PullCoefficient: 5,
	}
}

func newTestSystem() (*System, *fakeWorld, *config.HookConfig) {
	fw := newFakeWorld()
	cfg := testConfig()
	return NewSystem(fw, fw, cfg), fw, cfg
}

// ownedHooks counts live hooks whose owner is player.
func ownedHooks(s *System, player donburi.Entity) int {
	n := 0
	for _, h := range s.Handles() {
		if hk, ok := s.Hook(h); ok && hk.Owner == player {
			n++
		}
	}
	return n
}
