package core

import (
	"testing"
	"time"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/shared/leveldata"
	"github.com/automoto/freezetag/shared/messages"
	"github.com/automoto/freezetag/shared/netconfig"
)

type fakeClient struct {
	msgs []any
}

func (c *fakeClient) SendMessage(msg any) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

// received returns every message of type T sent to c.
func received[T any](c *fakeClient) []T {
	var out []T
	for _, m := range c.msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// testLevel is a 640x320 room: a floor along the bottom and a wall on the
// right. Red spawns at x=100, blue at x=300.
func testLevel() *ServerLevel {
	return NewServerLevel("test", &leveldata.CollisionData{
		MapWidth:  640,
		MapHeight: 320,
		SolidRects: []leveldata.SolidRect{
			{X: 0, Y: 288, W: 640, H: 16},
			{X: 600, Y: 0, W: 16, H: 288},
		},
		SpawnPoints: []leveldata.SpawnPoint{
			{X: 100, Y: 272, Team: 0},
			{X: 200, Y: 272, Team: leveldata.NoTeam},
			{X: 300, Y: 272, Team: 1},
		},
	})
}

type testServer struct {
	*Server
	t     *testing.T
	clock time.Time
}

// newTestServer builds a headless server. setup runs after the config reset
// and before the server reads it.
func newTestServer(t *testing.T, setup ...func()) *testServer {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
	for _, fn := range setup {
		fn()
	}

	ts := &testServer{
		Server: newServer(testLevel(), nil, false),
		t:      t,
		clock:  time.Unix(1000, 0),
	}
	ts.now = ts.clock
	return ts
}

func (ts *testServer) joinPlayer(id string) (*Session, *fakeClient) {
	ts.t.Helper()
	c := &fakeClient{}
	ts.join(c, id, messages.JoinRequest{PlayerName: id})
	sess, ok := ts.sessions.ByID(id)
	if !ok {
		ts.t.Fatalf("player %s did not join", id)
	}
	return sess, c
}

// tick runs n server ticks.
func (ts *testServer) tick(n int) {
	for i := 0; i < n; i++ {
		ts.clock = ts.clock.Add(time.Second / time.Duration(config.Server.TickRate))
		ts.Step(ts.clock)
	}
}

// tickUntil runs ticks until cond holds, failing after max ticks.
func (ts *testServer) tickUntil(max int, what string, cond func() bool) {
	ts.t.Helper()
	for i := 0; i < max; i++ {
		if cond() {
			return
		}
		ts.tick(1)
	}
	if !cond() {
		ts.t.Fatalf("%s did not happen within %d ticks", what, max)
	}
}

// input delivers a client input frame holding the given actions.
func (ts *testServer) input(sess *Session, seq uint32, actions ...netconfig.ActionID) {
	in := messages.NewPlayerInput(seq)
	for _, a := range actions {
		in.Actions[a] = true
	}
	ts.onPlayerInput(sess.ID, in)
}
