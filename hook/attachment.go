package hook

import (
	"github.com/automoto/freezetag/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Handle addresses a hook record. Handles are generation checked, so a handle
// kept after its hook was released never resolves to a newer hook. The zero
// Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type record struct {
	gen  uint32
	live bool

	owner donburi.Entity
	body  donburi.Entity
	state State

	target       donburi.Entity
	hasTarget    bool
	targetPlayer bool          // target was a player when the hook attached
	offset       gamemath.Vec3 // hook origin relative to a player target

	origin gamemath.Vec3
}

// slot is a connected player's hook state.
type slot struct {
	hook    Handle
	tension Tension
}

// attachments is the arena of hook records plus the per-player slots. link
// and unlink are the only code that writes either side of the owner-hook
// relation, so player.hook == H exactly when H is live and H.owner == player.
type attachments struct {
	records []record
	free    []uint32
	slots   map[donburi.Entity]*slot
}

func newAttachments() attachments {
	return attachments{slots: make(map[donburi.Entity]*slot)}
}

func (a *attachments) slot(owner donburi.Entity) *slot {
	return a.slots[owner]
}

func (a *attachments) get(h Handle) *record {
	if h.IsZero() || int(h.index) >= len(a.records) {
		return nil
	}
	rec := &a.records[h.index]
	if !rec.live || rec.gen != h.gen {
		return nil
	}
	return rec
}

// link allocates a flying hook for owner. The owner's slot must be empty.
func (a *attachments) link(owner, body donburi.Entity, origin gamemath.Vec3) Handle {
	s := a.slots[owner]
	if s == nil || !s.hook.IsZero() {
		return Handle{}
	}

	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.records = append(a.records, record{})
		idx = uint32(len(a.records) - 1)
	}

	rec := &a.records[idx]
	gen := rec.gen + 1
	if gen == 0 {
		gen = 1
	}
	*rec = record{
		gen:    gen,
		live:   true,
		owner:  owner,
		body:   body,
		state:  Flying,
		origin: origin,
	}

	h := Handle{index: idx, gen: gen}
	s.hook = h
	return h
}

// unlink retires h and clears its owner's slot. It returns a copy of the
// retired record.
func (a *attachments) unlink(h Handle) (record, bool) {
	rec := a.get(h)
	if rec == nil {
		return record{}, false
	}
	out := *rec

	if s := a.slots[rec.owner]; s != nil && s.hook == h {
		s.hook = Handle{}
		s.tension = TensionNormal
	}
	rec.live = false
	rec.state = Detached
	rec.hasTarget = false
	rec.targetPlayer = false
	a.free = append(a.free, h.index)

	out.state = Detached
	return out, true
}

// live returns the handles of every live hook.
func (a *attachments) live() []Handle {
	var out []Handle
	for i := range a.records {
		if a.records[i].live {
			out = append(out, Handle{index: uint32(i), gen: a.records[i].gen})
		}
	}
	return out
}
