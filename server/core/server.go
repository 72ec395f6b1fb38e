package core

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/freeze"
	"github.com/automoto/freezetag/hook"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netcomponents"
	"github.com/automoto/freezetag/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Server manages the game state and client connections
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	level     *ServerLevel
	store     *config.Store
	networked bool

	sessions   *SessionRegistry
	hooks      *hook.System
	host       *hookHost
	rules      *freeze.Rules
	hookBodies map[donburi.Entity]*HookPhysics
	worldspawn donburi.Entity
	teamState  donburi.Entity

	// Simulation time of the current tick
	now time.Time

	// Filled by transport goroutines, drained by the tick
	commands []func()
	mu       sync.Mutex

	players atomic.Int32
}

// NewServer creates a new game server for level. store may be nil.
func NewServer(level *ServerLevel, store *config.Store) *Server {
	return newServer(level, store, true)
}

func newServer(level *ServerLevel, store *config.Store, networked bool) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:      world,
		level:      level,
		store:      store,
		networked:  networked,
		sessions:   NewSessionRegistry(),
		hookBodies: make(map[donburi.Entity]*HookPhysics),
		now:        time.Now(),
	}
	s.loop = NewGameLoop(s, config.Server.TickRate)

	teams := freeze.NewTeams(config.Freeze.MaxTeams)
	s.rules = freeze.NewRules(teams, &config.Freeze)
	s.host = &hookHost{s: s}
	s.hooks = hook.NewSystem(s.host, s.host, &config.Hook)

	// Solid level geometry touches hooks as this entity
	s.worldspawn = world.Create(tags.WorldSpawn)

	if networked {
		// Set up the world for esync
		srvsync.UseEsync(world)
	}

	s.teamState = world.Create(netcomponents.NetTeamState, tags.TeamState)
	if networked {
		if err := srvsync.NetworkSync(s.world, &s.teamState, netcomponents.NetTeamState); err != nil {
			log.Printf("[server] failed to sync team state: %v", err)
		}
	}

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	// Start game loop
	s.loop.Start()

	// Create and start WebSocket transport
	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server. Settings are saved after the loop
// has exited.
func (s *Server) Stop() {
	s.loop.Stop()
	if err := s.store.Save(); err != nil {
		log.Printf("[server] failed to save settings: %v", err)
	}
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		id := client.Id()
		s.enqueue(func() { s.leave(id) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		id := client.Id()
		s.enqueue(func() { s.join(client, id, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		id := client.Id()
		s.enqueue(func() { s.onPlayerInput(id, input) })
	})

	router.On(func(client *router.NetworkClient, cmd messages.HookCommand) {
		id := client.Id()
		s.enqueue(func() { s.onHookCommand(id, cmd) })
	})

	router.On(func(client *router.NetworkClient, key messages.MenuKey) {
		id := client.Id()
		s.enqueue(func() { s.onMenuKey(id, key) })
	})

	router.On(func(client *router.NetworkClient, cmd messages.ConsoleCommand) {
		id := client.Id()
		s.enqueue(func() { s.onConsoleCommand(id, cmd) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

// enqueue schedules fn to run on the simulation goroutine.
func (s *Server) enqueue(fn func()) {
	s.mu.Lock()
	s.commands = append(s.commands, fn)
	s.mu.Unlock()
}

// Exec runs a server console line as the operator.
func (s *Server) Exec(line string) {
	s.enqueue(func() {
		for _, out := range s.execOperator(line) {
			log.Printf("[console] %s", out)
		}
	})
}

// ProcessCommands runs every queued network and console command.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// send writes msg to one session. Failures are logged; the disconnect
// callback cleans up broken clients.
func (s *Server) send(sess *Session, msg any) {
	if sess.Client == nil {
		return
	}
	if err := sess.Client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", sess.ID, err)
	}
}

// broadcastEvent sends msg to every joined session.
func (s *Server) broadcastEvent(msg any) {
	for _, sess := range s.sessions.All() {
		s.send(sess, msg)
	}
}

// printf sends a console line to one session.
func (s *Server) printf(sess *Session, text string) {
	s.send(sess, messages.PrintMessage{Text: text})
}

// netID returns the network id of e, or 0 when it is not synced.
func (s *Server) netID(e donburi.Entity) uint {
	if !s.networked || !s.world.Valid(e) {
		return 0
	}
	if nid := esync.GetNetworkId(s.world.Entry(e)); nid != nil {
		return uint(*nid)
	}
	return 0
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Hooks returns the grappling hook system.
func (s *Server) Hooks() *hook.System {
	return s.hooks
}

// PlayerCount returns the number of joined players. Call it from the
// simulation goroutine.
func (s *Server) PlayerCount() int {
	return s.sessions.Len()
}

// ConnectedPlayers is PlayerCount for use from other goroutines.
func (s *Server) ConnectedPlayers() int {
	return int(s.players.Load())
}
