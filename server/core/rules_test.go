package core

import (
	"testing"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/hook"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/automoto/freezetag/shared/netconfig"
)

func TestFreezeReleasesHooks(t *testing.T) {
	ts := newTestServer(t)
	red, _ := ts.joinPlayer("red")
	blue, blueClient := ts.joinPlayer("blue")
	ts.tick(2)

	ts.hooks.Command(red.Entity, hook.CmdFire)
	ts.tickUntil(40, "player attach", func() bool { return ts.hooks.State(red.Entity) == hook.Attached })

	// Freezing the target tears down the hook attached to it
	ts.damage(blue.Entity, red.Entity, 100)
	if !ts.rules.IsFrozen(blue.Entity) {
		t.Fatal("lethal damage should freeze")
	}
	if ts.hooks.Live() != 0 {
		t.Fatalf("expected no live hooks, got %d", ts.hooks.Live())
	}
	if len(received[messages.FreezeEvent](blueClient)) != 1 {
		t.Fatal("expected a freeze event")
	}

	// Frozen players cannot hook
	ts.hooks.Command(blue.Entity, hook.CmdFire)
	if ts.hooks.State(blue.Entity) != hook.Detached {
		t.Fatal("frozen player fired a hook")
	}

	ts.tick(1)
	state := netcomponents.NetPlayerState.Get(ts.world.Entry(blue.Entity))
	if state.StateID != netconfig.Frozen || state.Health != 0 {
		t.Fatalf("unexpected frozen state %+v", state)
	}
}

func TestTeammateThaws(t *testing.T) {
	ts := newTestServer(t, func() { config.Freeze.MaxTeams = 2 })
	a, client := ts.joinPlayer("a")
	ts.joinPlayer("b")
	c, _ := ts.joinPlayer("c")
	if !ts.rules.Teams.SameTeam(a.Entity, c.Entity) {
		t.Fatal("expected a and c on the same team")
	}
	ts.tick(2)

	ts.damage(a.Entity, a.Entity, 100)
	ts.tick(1)
	if ts.rules.ThawProgress(a.Entity) <= 0 {
		t.Fatal("thaw should start while a teammate stands close")
	}

	ticks := int(config.Freeze.ThawTime.Seconds()*float64(config.Server.TickRate)) + 5
	ts.tickUntil(ticks, "thaw", func() bool { return !ts.rules.IsFrozen(a.Entity) })

	thaws := received[messages.ThawEvent](client)
	if len(thaws) != 1 {
		t.Fatalf("expected one thaw event, got %d", len(thaws))
	}
	if ts.rules.Health(a.Entity) != config.Freeze.StartHealth {
		t.Fatal("thawed player should get full health")
	}
}

func TestRoundWinAndRestart(t *testing.T) {
	ts := newTestServer(t)
	red, redClient := ts.joinPlayer("red")
	blue, _ := ts.joinPlayer("blue")
	ts.tick(2)
	if ts.rules.State() != netconfig.MatchStatePlaying {
		t.Fatalf("expected playing, got %d", ts.rules.State())
	}

	ts.damage(blue.Entity, red.Entity, 100)
	ts.tick(1)

	rounds := received[messages.RoundEvent](redClient)
	if len(rounds) != 1 || rounds[0].Winner != int(netconfig.TeamRed) {
		t.Fatalf("expected red to win, got %+v", rounds)
	}
	if info, _ := ts.rules.Teams.Info(netconfig.TeamRed); info.Score != 1 {
		t.Fatalf("expected red score 1, got %d", info.Score)
	}
	ts.writeTeamState()
	scores := netcomponents.NetTeamState.Get(ts.world.Entry(ts.teamState))
	if scores.MatchState != netconfig.MatchStateFinished || scores.Teams[0].Score != 1 {
		t.Fatalf("scoreboard not updated: %+v", scores)
	}

	ticks := int(config.Freeze.RoundRestart.Seconds()*float64(config.Server.TickRate)) + 5
	ts.tickUntil(ticks, "round restart", func() bool { return !ts.rules.IsFrozen(blue.Entity) })
	if blue.Physics.Object.X != 300 {
		t.Fatalf("expected blue back at its spawn, got x=%f", blue.Physics.Object.X)
	}
}

func TestStompDamagesEnemy(t *testing.T) {
	ts := newTestServer(t)
	red, _ := ts.joinPlayer("red")
	blue, _ := ts.joinPlayer("blue")
	ts.tick(2)

	// Drop red onto blue's head
	red.Physics.Object.X = blue.Physics.Object.X
	red.Physics.Object.Y = blue.Physics.Object.Y - 120
	red.Physics.Object.Update()

	ts.tickUntil(60, "stomp", func() bool { return ts.rules.Health(blue.Entity) < config.Freeze.StartHealth })
	if ts.rules.Health(red.Entity) != config.Freeze.StartHealth {
		t.Fatal("the stomping player must not be hurt")
	}
}

func TestFallingOutFreezesAndRespawns(t *testing.T) {
	ts := newTestServer(t)
	p, _ := ts.joinPlayer("p")
	ts.tick(1)

	p.Physics.Object.Y = float64(ts.level.MapHeight) + 10
	p.Physics.Object.Update()
	ts.tick(1)

	if !ts.rules.IsFrozen(p.Entity) {
		t.Fatal("falling out of the level should freeze")
	}
	if p.Physics.Object.Y > float64(ts.level.MapHeight) {
		t.Fatal("player should be moved back to a spawn")
	}
}
