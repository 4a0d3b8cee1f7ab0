package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reverse-chess/internal/config"
	"reverse-chess/internal/game"
	"reverse-chess/internal/view"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNoFreeCode   = errors.New("no free room code")
)

// maxCodeAttempts bounds the search for an unused room code.
const maxCodeAttempts = 32

type Store interface {
	GetRoom(code string) (*Room, bool)
	// SaveRoomIfAbsent stores r unless its code is taken, and reports
	// whether it did.
	SaveRoomIfAbsent(r *Room) bool
	DeleteRoom(code string)
	Rooms() []*Room
}

type Manager struct {
	store Store
	cfg   config.Config
	hub   Broadcaster
	log   *zap.Logger
	now   func() time.Time
}

func NewManager(s Store, cfg config.Config, log *zap.Logger) *Manager {
	return &Manager{
		store: s,
		cfg:   cfg,
		hub:   nopBroadcaster{},
		log:   log,
		now:   time.Now,
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m.hub = hub
}

type CreateOptions struct {
	ExcludeCenter bool
	Blocked       *game.Pos
}

func (m *Manager) CreateRoom(opts CreateOptions) (*Room, error) {
	var gameOpts []game.Option
	if opts.ExcludeCenter || m.cfg.ExcludeCenter {
		gameOpts = append(gameOpts, game.WithExcludeCenter())
	}
	if opts.Blocked != nil {
		gameOpts = append(gameOpts, game.WithBlocked(*opts.Blocked))
	}

	r := newRoom(uuid.NewString(), "", m.now(), gameOpts...)
	for i := 0; i < maxCodeAttempts; i++ {
		r.Code = randCode(m.cfg.RoomCodeLength)
		if m.store.SaveRoomIfAbsent(r) {
			m.log.Info("room created",
				zap.String("room", r.Code),
				zap.Stringer("blocked", r.State().Blocked))
			return r, nil
		}
	}
	m.log.Warn("room code space exhausted", zap.Int("codeLength", m.cfg.RoomCodeLength))
	return nil, fmt.Errorf("%w after %d attempts", ErrNoFreeCode, maxCodeAttempts)
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

func (m *Manager) State(code string) (game.State, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return game.State{}, ErrRoomNotFound
	}
	return r.State(), nil
}

func (m *Manager) Place(code string, p game.Pos) (game.State, error) {
	return m.apply(code, "place", func(s *game.Session) error { return s.Place(p) })
}

func (m *Manager) Undo(code string) (game.State, error) {
	return m.apply(code, "undo", func(s *game.Session) error { return s.Undo() })
}

func (m *Manager) NewGame(code string) (game.State, error) {
	return m.apply(code, "new game", func(s *game.Session) error {
		s.NewGame()
		return nil
	})
}

func (m *Manager) ResetSameBlock(code string) (game.State, error) {
	return m.apply(code, "reset", func(s *game.Session) error {
		s.ResetSameBlock()
		return nil
	})
}

// Attach runs fn with the room's current state while holding the room lock,
// so a subscriber registered inside fn sees every later broadcast and none
// that came before.
func (m *Manager) Attach(code string, fn func(game.State)) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.attach(fn)
	return nil
}

// apply runs op against the room and broadcasts the new view when it
// succeeds. The broadcast happens under the room lock.
func (m *Manager) apply(code, op string, fn func(*game.Session) error) (game.State, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return game.State{}, ErrRoomNotFound
	}

	st, err := r.do(m.now(), fn, func(st game.State) {
		m.hub.Broadcast(code, "state-updated", view.Build(st))
	})
	if err != nil {
		m.log.Debug("operation rejected",
			zap.String("room", code), zap.String("op", op), zap.Error(err))
		return st, err
	}

	m.log.Debug("operation applied",
		zap.String("room", code), zap.String("op", op), zap.Int("moveCount", st.MoveCount))
	if st.GameOver && op == "place" {
		m.log.Info("game over",
			zap.String("room", code),
			zap.Int("blue", st.Score[game.Blue]),
			zap.Int("red", st.Score[game.Red]))
	}
	return st, nil
}

// Sweep removes rooms idle for longer than the configured TTL.
func (m *Manager) Sweep() int {
	if m.cfg.RoomTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.RoomTTL)
	removed := 0
	for _, r := range m.store.Rooms() {
		if r.LastSeen().Before(cutoff) {
			m.store.DeleteRoom(r.Code)
			removed++
			m.log.Info("room expired", zap.String("room", r.Code))
		}
	}
	return removed
}

// RunJanitor sweeps idle rooms every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
