package core

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the loop on its own goroutine.
func (g *GameLoop) Start() {
	g.started.Store(true)
	go g.Run()
}

func (g *GameLoop) Run() {
	defer close(g.done)
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[loop] game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("[loop] game loop stopped")
			return
		case now := <-ticker.C:
			g.tick(now)
		}
	}
}

// Stop ends the loop and, if it was started, waits for the tick in progress
// to finish. Safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
	if g.started.Load() {
		<-g.done
	}
}

func (g *GameLoop) tick(now time.Time) {
	g.server.Step(now)

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[loop] sync error: %v", err)
	}
}

// stepsPerTick is the number of 60 Hz physics sub-steps per server tick.
func (g *GameLoop) stepsPerTick() int {
	steps := 60 / g.tickRate // 3 at 20 Hz
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Step advances the simulation by one tick. Order matters: commands, then
// movement and collisions, then hook think, then the freeze rules.
func (s *Server) Step(now time.Time) {
	dt := time.Second / time.Duration(s.loop.tickRate)
	s.now = now

	s.ProcessCommands()
	s.processInputEdges()

	for step := 0; step < s.loop.stepsPerTick(); step++ {
		s.stepPlayers()
		s.stepHooks()
	}

	s.clearOverrides()
	s.hooks.Update()
	s.updateRules(dt)
	s.updateMenus()
	s.writeNetState()
}
