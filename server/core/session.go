package core

import (
	"github.com/automoto/freezetag/menu"
	"github.com/yohamta/donburi"
)

// messageSender is the part of a network client the server writes to.
type messageSender interface {
	SendMessage(msg any) error
}

// Session is one joined player.
type Session struct {
	ID       string
	Name     string
	Client   messageSender
	Entity   donburi.Entity
	Physics  *PlayerPhysics
	Display  *menu.Display
	Joined   int // join order, used for stable iteration
	NetID    uint
	layout   string
	spawnIdx int
}

// SessionRegistry indexes sessions by client id and by player entity.
type SessionRegistry struct {
	byID     map[string]*Session
	byEntity map[donburi.Entity]*Session
	order    []*Session // join order, replaced on Remove
	joined   int
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byID:     make(map[string]*Session),
		byEntity: make(map[donburi.Entity]*Session),
	}
}

// Add registers s and stamps its join order.
func (r *SessionRegistry) Add(s *Session) {
	r.joined++
	s.Joined = r.joined
	r.byID[s.ID] = s
	r.byEntity[s.Entity] = s
	r.order = append(r.order, s)
}

// Remove forgets the session with the given client id.
func (r *SessionRegistry) Remove(id string) (*Session, bool) {
	s, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	delete(r.byEntity, s.Entity)

	order := make([]*Session, 0, len(r.order))
	for _, o := range r.order {
		if o != s {
			order = append(order, o)
		}
	}
	r.order = order
	return s, true
}

func (r *SessionRegistry) ByID(id string) (*Session, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *SessionRegistry) ByEntity(e donburi.Entity) (*Session, bool) {
	s, ok := r.byEntity[e]
	return s, ok
}

// All returns every session in join order. The slice is shared and must not
// be modified; it stays valid across a Remove.
func (r *SessionRegistry) All() []*Session {
	return r.order
}

func (r *SessionRegistry) Len() int {
	return len(r.byID)
}
