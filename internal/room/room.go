package room

import (
	"math/rand"
	"sync"
	"time"

	"reverse-chess/internal/game"
)

// Room is one hosted game. All access to the session goes through the room
// lock, so operations on one game never interleave.
type Room struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`

	mu       sync.Mutex
	session  *game.Session
	lastSeen time.Time
}

func newRoom(id, code string, now time.Time, opts ...game.Option) *Room {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	return &Room{
		ID:        id,
		Code:      code,
		CreatedAt: now,
		session:   game.NewSession(rng, opts...),
		lastSeen:  now,
	}
}

// do runs fn under the room lock and returns the state it left behind. When
// fn succeeds, publish sees that state before the lock is released, so
// publications from one room are delivered in the order they happened.
func (r *Room) do(now time.Time, fn func(*game.Session) error, publish func(game.State)) (game.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeen = now
	err := fn(r.session)
	st := r.session.State()
	if err == nil && publish != nil {
		publish(st)
	}
	return st, err
}

// attach hands the current state to fn under the room lock. No operation on
// the room can run between the read and fn returning.
func (r *Room) attach(fn func(game.State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.session.State())
}

func (r *Room) State() game.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.State()
}

func (r *Room) LastSeen() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSeen
}
