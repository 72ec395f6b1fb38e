package hook

import (
	"math"
	"testing"

	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/yohamta/donburi"
)

// checkSymmetry fails the test unless every player's handle resolves to a
// live hook owned by that player and every live hook is its owner's handle.
func checkSymmetry(t *testing.T, s *System, players ...donburi.Entity) {
	t.Helper()
	for _, p := range players {
		h, ok := s.HookOf(p)
		if ok {
			hk, live := s.Hook(h)
			if !live || hk.Owner != p {
				t.Fatalf("player %v holds handle to hook owned by %v (live=%v)", p, hk.Owner, live)
			}
		}
		if n := ownedHooks(s, p); (n == 1) != ok || n > 1 {
			t.Fatalf("player %v: handle set=%v but owns %d live hooks", p, ok, n)
		}
	}
}

func TestFireReplacesPreviousHook(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)

	var bodies []donburi.Entity
	for i := 0; i < 3; i++ {
		s.Fire(a)
		checkSymmetry(t, s, a)
		h, ok := s.HookOf(a)
		if !ok {
			t.Fatalf("fire %d: expected a hook", i)
		}
		hk, _ := s.Hook(h)
		bodies = append(bodies, hk.Body)
	}

	if n := ownedHooks(s, a); n != 1 {
		t.Fatalf("expected exactly one live hook, got %d", n)
	}
	for i, b := range bodies[:2] {
		if fw.freed[b] != 1 {
			t.Fatalf("hook %d: expected projectile freed once, freed %d times", i, fw.freed[b])
		}
	}
	if fw.freed[bodies[2]] != 0 {
		t.Fatal("current hook must not be freed")
	}
	if len(fw.projectiles) != 1 {
		t.Fatalf("expected one projectile in the world, got %d", len(fw.projectiles))
	}
}

func TestFireLaunchesAlongAim(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(10, 20, 0))
	fw.entities[a].aimDir = gamemath.V3(0, -1, 0)
	s.Connect(a)

	s.Fire(a)
	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	pr := fw.projectiles[hk.Body]
	if pr.origin != gamemath.V3(10, 20, 0) {
		t.Fatalf("expected projectile at owner aim origin, got %v", pr.origin)
	}
	if pr.velocity != gamemath.V3(0, -900, 0) {
		t.Fatalf("expected velocity (0,-900,0), got %v", pr.velocity)
	}
	if s.State(a) != Flying {
		t.Fatalf("expected flying, got %s", s.State(a))
	}
}

func TestFireRequiresLivingConnectedPlayer(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))

	s.Fire(a)
	if s.Live() != 0 {
		t.Fatal("unconnected player must not fire")
	}

	s.Connect(a)
	fw.entities[a].alive = false
	s.Fire(a)
	if s.Live() != 0 || len(fw.projectiles) != 0 {
		t.Fatal("dead player must not fire")
	}
}

func TestTouchOwnerKeepsFlying(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	s.Touch(h, a)

	if s.State(a) != Flying {
		t.Fatalf("expected flying after touching owner, got %s", s.State(a))
	}
	pr := fw.projectiles[hk.Body]
	if pr.stopped || pr.velocity == (gamemath.Vec3{}) {
		t.Fatal("touching the owner must not stop the hook")
	}
}

func TestTouchPlayerAttachesWhenNotWallOnly(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	b := fw.addPlayer(gamemath.V3(200, 0, 0))
	s.Connect(a)
	s.Connect(b)
	s.Fire(a)

	h, _ := s.HookOf(a)
	s.Touch(h, b)

	hk, _ := s.Hook(h)
	if hk.State != Attached || !hk.HasTarget || hk.Target != b {
		t.Fatalf("expected attached to B, got %+v", hk)
	}
	pr := fw.projectiles[hk.Body]
	if !pr.stopped || pr.velocity != (gamemath.Vec3{}) {
		t.Fatal("attached hook must be stopped with zero velocity")
	}
	checkSymmetry(t, s, a, b)
}

func TestWallOnlyIgnoresPlayers(t *testing.T) {
	s, fw, cfg := newTestSystem()
	cfg.WallOnly = true
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	b := fw.addPlayer(gamemath.V3(200, 0, 0))
	wall := fw.addWall()
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	s.Touch(h, b)
	if s.State(a) != Flying {
		t.Fatalf("wall-only hook must ignore players, got %s", s.State(a))
	}

	s.Touch(h, wall)
	hk, _ := s.Hook(h)
	if hk.State != Attached || hk.Target != wall {
		t.Fatalf("expected attached to wall, got %+v", hk)
	}
}

func TestTouchIgnoredOnceAttached(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	w1 := fw.addWall()
	w2 := fw.addWall()
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	s.Touch(h, w1)
	s.Touch(h, w2)
	hk, _ := s.Hook(h)
	if hk.Target != w1 {
		t.Fatal("attached hook must keep its first target")
	}
}

func TestFireThenDrop(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)
	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.entities[a].velocity = gamemath.V3(50, -20, 0)

	s.Command(a, "drop")

	if _, ok := s.HookOf(a); ok {
		t.Fatal("expected no hook after drop")
	}
	if s.State(a) != Detached {
		t.Fatalf("expected detached, got %s", s.State(a))
	}
	if fw.freed[hk.Body] != 1 {
		t.Fatal("expected the projectile to be freed")
	}
	if fw.entities[a].velocity != (gamemath.Vec3{}) {
		t.Fatalf("expected residual velocity cleared, got %v", fw.entities[a].velocity)
	}
	checkSymmetry(t, s, a)
}

func TestDropResetsTension(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)
	s.SetTension(a, TensionGrow)
	s.Drop(a)
	if s.Tension(a) != TensionNormal {
		t.Fatalf("expected tension reset to normal, got %s", s.Tension(a))
	}
}

func TestThinkPullsAttachedOwner(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	wall := fw.addWall()
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.projectiles[hk.Body].origin = gamemath.V3(60, 80, 0)
	s.Touch(h, wall)
	fw.entities[a].velocity = gamemath.V3(1, 0, 0)

	s.Think(h)

	v := fw.entities[a].velocity
	if math.Abs(v.X-181) > eps || math.Abs(v.Y-240) > eps {
		t.Fatalf("expected velocity (181,240,0), got %v", v)
	}
	if fw.entities[a].overrides != 1 {
		t.Fatalf("expected prediction override, got %d", fw.entities[a].overrides)
	}
}

func TestThinkSlackChainLeavesVelocity(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	wall := fw.addWall()
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.projectiles[hk.Body].origin = gamemath.V3(30, 0, 0)
	s.Touch(h, wall)
	fw.entities[a].velocity = gamemath.V3(3, 4, 0)

	s.Think(h)

	if fw.entities[a].velocity != gamemath.V3(3, 4, 0) {
		t.Fatalf("slack chain must not change velocity, got %v", fw.entities[a].velocity)
	}
	if fw.entities[a].overrides != 0 {
		t.Fatal("slack chain must not override prediction")
	}
}

func TestShrinkAndGrowChangeDesiredLength(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	wall := fw.addWall()
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.projectiles[hk.Body].origin = gamemath.V3(30, 0, 0)
	s.Touch(h, wall)

	s.Command(a, "SHRINK")
	s.Think(h)
	if got := fw.entities[a].velocity.X; math.Abs(got-50) > eps {
		t.Fatalf("shrink: expected impulse 50, got %f", got)
	}

	fw.entities[a].velocity = gamemath.Vec3{}
	fw.projectiles[hk.Body].origin = gamemath.V3(700, 0, 0)
	s.Command(a, "grow")
	s.Think(h)
	if v := fw.entities[a].velocity; v != (gamemath.Vec3{}) {
		t.Fatalf("grow: chain shorter than 800 must be slack, got %v", v)
	}
}

func TestThinkReleasesBeyondMaxLength(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.projectiles[hk.Body].origin = gamemath.V3(1000.5, 0, 0)
	fw.entities[a].velocity = gamemath.V3(2, 0, 0)

	s.Think(h)

	if _, ok := s.HookOf(a); ok {
		t.Fatal("expected hook released beyond max length")
	}
	if fw.freed[hk.Body] != 1 {
		t.Fatal("expected projectile freed")
	}
	if v := fw.entities[a].velocity; v != (gamemath.Vec3{}) {
		t.Fatalf("expected no pull and cleared velocity, got %v", v)
	}
	if fw.entities[a].overrides != 0 {
		t.Fatal("no force may be applied on the release tick")
	}
	if len(fw.chains) != 0 {
		t.Fatal("released hook must not emit a chain effect")
	}
}

func TestThinkReleasesWhenOwnerDies(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)
	h, _ := s.HookOf(a)

	fw.entities[a].alive = false
	s.Think(h)

	if s.Live() != 0 {
		t.Fatal("hook of a dead owner must destroy itself")
	}
	checkSymmetry(t, s, a)
}

func TestThinkReleasesWhenOwnerRemoved(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)

	fw.remove(a)
	s.Update()

	if s.Live() != 0 || len(fw.projectiles) != 0 {
		t.Fatal("orphaned hook must be freed")
	}
}

func TestChainEffectEveryTick(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	s.Connect(a)
	s.Fire(a)

	s.Update()
	s.Update()

	if len(fw.chains) != 2 {
		t.Fatalf("expected a chain effect per tick while flying, got %d", len(fw.chains))
	}
	if fw.chains[0].owner != a || fw.chains[0].from != gamemath.V3(0, 0, 0) {
		t.Fatalf("unexpected chain effect %+v", fw.chains[0])
	}
}

func TestAttachedHookFollowsPlayerTarget(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	b := fw.addPlayer(gamemath.V3(100, 0, 0))
	s.Connect(a)
	s.Connect(b)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	fw.projectiles[hk.Body].origin = gamemath.V3(95, 0, 0)
	s.Touch(h, b)

	fw.entities[b].origin = gamemath.V3(150, 10, 0)
	s.Think(h)

	if got := fw.projectiles[hk.Body].origin; got != gamemath.V3(145, 10, 0) {
		t.Fatalf("expected hook to follow target to (145,10,0), got %v", got)
	}
}

func TestThinkReleasesWhenPlayerTargetRemoved(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	b := fw.addPlayer(gamemath.V3(100, 0, 0))
	s.Connect(a)
	s.Connect(b)
	s.Fire(a)

	h, _ := s.HookOf(a)
	hk, _ := s.Hook(h)
	s.Touch(h, b)

	// Target vanishes without a Cleanup call
	fw.remove(b)
	s.Update()

	if s.Live() != 0 {
		t.Fatal("hook on a removed player must be released")
	}
	if fw.freed[hk.Body] != 1 {
		t.Fatalf("expected projectile freed once, freed %d times", fw.freed[hk.Body])
	}
	checkSymmetry(t, s, a)
}

func TestStaleHandleIsIgnored(t *testing.T) {
	s, fw, _ := newTestSystem()
	a := fw.addPlayer(gamemath.V3(0, 0, 0))
	wall := fw.addWall()
	s.Connect(a)

	s.Fire(a)
	old, _ := s.HookOf(a)
	s.Fire(a)
	cur, _ := s.HookOf(a)
	if old == cur {
		t.Fatal("expected a new handle")
	}

	s.Touch(old, wall)
	s.Think(old)
	if s.State(a) != Flying {
		t.Fatalf("stale handle must not affect the new hook, got %s", s.State(a))
	}
	if _, ok := s.Hook(old); ok {
		t.Fatal("stale handle must not resolve")
	}
}
