package core

import (
	"log"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/freeze"
	"github.com/automoto/freezetag/hook"
	"github.com/automoto/freezetag/menu"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/automoto/freezetag/shared/netconfig"
	"github.com/automoto/freezetag/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
)

// join validates a join request and spawns the player on the smallest team.
func (s *Server) join(client messageSender, id string, req messages.JoinRequest) {
	if _, exists := s.sessions.ByID(id); exists {
		return
	}

	reject := func(reason string) {
		log.Printf("[server] rejected %s: %s", id, reason)
		if err := client.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
			log.Printf("[server] send to %s failed: %v", id, err)
		}
	}
	if config.Server.Version != "" && req.Version != config.Server.Version {
		reject("version mismatch: server requires " + config.Server.Version)
		return
	}
	if s.sessions.Len() >= config.Server.MaxPlayers {
		reject("server is full")
		return
	}

	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
		tags.Player,
	)
	entry := s.world.Entry(entity)

	name := req.PlayerName
	if name == "" {
		name = "player"
	}
	sess := &Session{
		ID:      id,
		Name:    name,
		Client:  client,
		Entity:  entity,
		Physics: newPlayerPhysics(s.level, entity, 0, 0),
		Display: menu.New(config.UI.MaxItems),
	}
	s.sessions.Add(sess)
	s.players.Store(int32(s.sessions.Len()))

	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Direction: 1,
		Team:      netconfig.TeamNone,
	})

	if s.networked {
		// Mark entity for network sync with interpolation for position
		err := srvsync.NetworkSync(s.world, &entity,
			srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
			netcomponents.NetPlayerState,
		)
		if err != nil {
			log.Printf("[server] failed to setup network sync for player: %v", err)
		}
	}
	sess.NetID = s.netID(entity)

	// The joiner learns its network id before any broadcast reaches it
	s.send(sess, messages.JoinAccepted{
		NetworkID:  esync.NetworkId(sess.NetID),
		ServerName: config.Server.Name,
		TickRate:   s.loop.tickRate,
		Level:      s.level.Name,
	})

	s.hooks.Connect(entity)
	s.joinTeam(sess, s.rules.Teams.AutoAssign())
	sess.Display.ShowMOTD(config.UI.MOTD, s.now, config.UI.MOTDTimeout)

	log.Printf("[server] %s joined as %q (%d players)", id, name, s.sessions.Len())
}

// leave tears down everything a disconnected player owned.
func (s *Server) leave(id string) {
	sess, ok := s.sessions.Remove(id)
	if !ok {
		return
	}
	s.players.Store(int32(s.sessions.Len()))

	s.hooks.Disconnect(sess.Entity)
	s.rules.Remove(sess.Entity)
	s.rules.Teams.Leave(sess.Entity)
	sess.Physics.leaveSpace(s.level)

	if s.world.Valid(sess.Entity) {
		s.world.Remove(sess.Entity)
	}
	log.Printf("[server] %s left (%d players)", id, s.sessions.Len())
}

// joinTeam moves the player onto team and respawns it there.
func (s *Server) joinTeam(sess *Session, team netconfig.TeamID) {
	s.hooks.Cleanup(sess.Entity)
	s.rules.Teams.Join(sess.Entity, team)
	s.rules.Spawn(sess.Entity)
	s.respawn(sess)

	if info, ok := s.rules.Teams.Info(team); ok {
		s.broadcastEvent(messages.PrintMessage{Text: sess.Name + " joined the " + info.Name + " team"})
	}
}

// spectate removes the player from its team and from the level.
func (s *Server) spectate(sess *Session) {
	if s.rules.Teams.TeamOf(sess.Entity) == netconfig.TeamNone {
		return
	}
	s.hooks.Cleanup(sess.Entity)
	s.rules.Teams.Leave(sess.Entity)
	s.rules.Spawn(sess.Entity)
	sess.Physics.leaveSpace(s.level)

	entry := s.world.Entry(sess.Entity)
	state := netcomponents.NetPlayerState.Get(entry)
	state.Team = netconfig.TeamNone
	state.Skin = ""
	state.Weapon = ""
	state.Armor = 0

	s.broadcastEvent(messages.PrintMessage{Text: sess.Name + " is now spectating"})
}

// respawn places the player at a spawn point for its team with a fresh
// loadout.
func (s *Server) respawn(sess *Session) {
	team := s.rules.Teams.TeamOf(sess.Entity)
	sp := s.level.spawnFor(int(team), sess.spawnIdx)
	sess.spawnIdx++

	pp := sess.Physics
	pp.enterSpace(s.level)
	pp.place(sp.X, sp.Y)
	pp.Override = false

	entry := s.world.Entry(sess.Entity)
	vel := netcomponents.NetVelocity.Get(entry)
	*vel = netcomponents.NetVelocityData{}

	inv := freeze.Loadout(config.Freeze.StartWeapon, config.Freeze.StartArmor)
	state := netcomponents.NetPlayerState.Get(entry)
	state.Team = team
	state.Skin = s.rules.Teams.Skin(team)
	state.Weapon = inv.Selected
	state.Armor = inv.Armor
	state.Health = s.rules.Health(sess.Entity)
}

func (s *Server) onPlayerInput(id string, input messages.PlayerInput) {
	sess, ok := s.sessions.ByID(id)
	if !ok {
		return
	}

	pp := sess.Physics
	pp.Direction = input.Direction
	if input.Direction != 0 {
		pp.Facing = input.Direction
	}
	pp.JumpPressed = input.Actions[netconfig.ActionJump]
	pp.MoveUpPressed = input.Actions[netconfig.ActionMoveUp]
	pp.CrouchPressed = input.Actions[netconfig.ActionCrouch]
	pp.HookPressed = input.Actions[netconfig.ActionHook]
	pp.MenuPressed = input.Actions[netconfig.ActionMenu]
	pp.LastInputSeq = input.Sequence
}

// processInputEdges turns held hook and menu buttons into commands: the hook
// fires on press and drops on release.
func (s *Server) processInputEdges() {
	for _, sess := range s.sessions.All() {
		pp := sess.Physics
		switch {
		case pp.HookPressed && !pp.HookWasPressed:
			s.hooks.Command(sess.Entity, hook.CmdFire)
		case !pp.HookPressed && pp.HookWasPressed:
			s.hooks.Command(sess.Entity, hook.CmdDrop)
		}
		pp.HookWasPressed = pp.HookPressed

		if pp.MenuPressed && !pp.MenuWasPressed {
			s.toggleMenu(sess)
		}
		pp.MenuWasPressed = pp.MenuPressed
	}
}

func (s *Server) onHookCommand(id string, cmd messages.HookCommand) {
	if sess, ok := s.sessions.ByID(id); ok {
		s.hooks.Command(sess.Entity, cmd.Command)
	}
}

// writeNetState copies simulation state into the synced components.
func (s *Server) writeNetState() {
	for _, sess := range s.sessions.All() {
		if !s.world.Valid(sess.Entity) {
			continue
		}
		entry := s.world.Entry(sess.Entity)
		pos := netcomponents.NetPosition.Get(entry)
		vel := netcomponents.NetVelocity.Get(entry)
		state := netcomponents.NetPlayerState.Get(entry)

		pp := sess.Physics
		pos.X = pp.Object.X
		pos.Y = pp.Object.Y
		state.StateID = s.deriveState(sess, vel)
		state.Direction = pp.Facing
		state.Health = s.rules.Health(sess.Entity)
		state.ThawProgress = s.rules.ThawProgress(sess.Entity)
		state.HookTension = int(s.hooks.Tension(sess.Entity))
		state.PredictionOverride = pp.Override
		state.LastSequence = pp.LastInputSeq
	}

	for body, hp := range s.hookBodies {
		if !s.world.Valid(body) {
			continue
		}
		nh := netcomponents.NetHook.Get(s.world.Entry(body))
		at := hp.origin()
		nh.X, nh.Y, nh.Z = at.X, at.Y, at.Z
		nh.State = netconfig.HookFlying
		nh.TargetNetworkID = 0
		if h, ok := s.hooks.HookOf(hp.Owner); ok {
			if hk, ok := s.hooks.Hook(h); ok && hk.State == hook.Attached {
				nh.State = netconfig.HookAttached
				if hk.HasTarget && hk.Target != s.worldspawn {
					nh.TargetNetworkID = s.netID(hk.Target)
				}
			}
		}
	}

	s.writeTeamState()
}

func (s *Server) writeTeamState() {
	if !s.world.Valid(s.teamState) {
		return
	}
	ts := netcomponents.NetTeamState.Get(s.world.Entry(s.teamState))
	ts.Teams = ts.Teams[:0]
	for _, info := range s.rules.Teams.All() {
		ts.Teams = append(ts.Teams, netcomponents.NetTeamInfo{
			Name:       info.Name,
			Score:      info.Score,
			Players:    info.Players,
			Frozen:     info.Frozen,
			Eliminated: info.Eliminated,
		})
	}
	ts.MatchState = s.rules.State()
	ts.Winner = s.rules.Winner()
}
