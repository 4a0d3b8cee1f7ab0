package room

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reverse-chess/internal/config"
	"reverse-chess/internal/game"
	"reverse-chess/internal/view"
)

type mapStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func (s *mapStore) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

func (s *mapStore) SaveRoomIfAbsent(r *Room) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.rooms[r.Code]; taken {
		return false
	}
	s.rooms[r.Code] = r
	return true
}

func (s *mapStore) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *mapStore) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Room
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

type message struct {
	room   string
	action string
	data   interface{}
}

type recorder struct {
	mu   sync.Mutex
	msgs []message
}

func (r *recorder) Broadcast(roomCode, action string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message{roomCode, action, data})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func newTestManager(t *testing.T) (*Manager, *recorder) {
	t.Helper()
	cfg := config.Default()
	m := NewManager(&mapStore{rooms: map[string]*Room{}}, cfg, zap.NewNop())
	rec := &recorder{}
	m.SetHub(rec)
	return m, rec
}

func corner() *game.Pos { return &game.Pos{Row: 0, Col: 0} }

func mustCreate(t *testing.T, m *Manager, opts CreateOptions) *Room {
	t.Helper()
	r, err := m.CreateRoom(opts)
	require.NoError(t, err)
	return r
}

func TestCreateRoom(t *testing.T) {
	m, _ := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	assert.Len(t, r.Code, 6)
	assert.NotEmpty(t, r.ID)
	got, ok := m.Get(r.Code)
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, game.Pos{}, r.State().Blocked)
}

func TestPlaceBroadcastsView(t *testing.T) {
	m, rec := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	st, err := m.Place(r.Code, game.Pos{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, st.MoveCount)

	require.Equal(t, 1, rec.count())
	msg := rec.msgs[0]
	assert.Equal(t, r.Code, msg.room)
	assert.Equal(t, "state-updated", msg.action)
	v, ok := msg.data.(view.View)
	require.True(t, ok)
	assert.Equal(t, 1, v.MoveCount)
}

func TestRejectedOperationsDoNotBroadcast(t *testing.T) {
	m, rec := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	_, err := m.Place(r.Code, game.Pos{Row: 0, Col: 0})
	assert.ErrorIs(t, err, game.ErrInvalidPlacement)

	_, err = m.Undo(r.Code)
	assert.ErrorIs(t, err, game.ErrNothingToUndo)

	assert.Equal(t, 0, rec.count())
	assert.Equal(t, 0, r.State().MoveCount)
}

func TestUnknownRoom(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Place("NOPE", game.Pos{})
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = m.Undo("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = m.NewGame("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = m.ResetSameBlock("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = m.State("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestResetAndNewGame(t *testing.T) {
	m, rec := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: &game.Pos{Row: 3, Col: 2}})
	_, err := m.Place(r.Code, game.Pos{Row: 0, Col: 0})
	require.NoError(t, err)

	st, err := m.ResetSameBlock(r.Code)
	require.NoError(t, err)
	assert.Equal(t, game.NewState(game.Pos{Row: 3, Col: 2}), st)

	st, err = m.NewGame(r.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, st.MoveCount)
	assert.Equal(t, 3, rec.count())
}

func TestConcurrentPlacesAreSerialised(t *testing.T) {
	m, _ := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	var wg sync.WaitGroup
	for i := 1; i < game.Size*game.Size; i++ {
		wg.Add(1)
		go func(p game.Pos) {
			defer wg.Done()
			_, _ = m.Place(r.Code, p)
		}(game.PosFromIndex(i))
	}
	wg.Wait()

	st := r.State()
	assert.True(t, st.GameOver)
	assert.Equal(t, game.TotalMoves, st.MoveCount)
	assert.Equal(t, game.LargestComponent(st.Board, game.Blue).Sum, st.Score[game.Blue])
}

func TestSweepExpiresIdleRooms(t *testing.T) {
	m, _ := newTestManager(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	idle := mustCreate(t, m, CreateOptions{})
	busy := mustCreate(t, m, CreateOptions{})

	now = now.Add(23 * time.Hour)
	_, err := m.NewGame(busy.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Sweep())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Get(idle.Code)
	assert.False(t, ok)
	_, ok = m.Get(busy.Code)
	assert.True(t, ok)
}

// slowRecorder stalls the first broadcast to widen any window in which a
// later operation could overtake it.
type slowRecorder struct {
	mu     sync.Mutex
	counts []int
	first  sync.Once
}

func (r *slowRecorder) Broadcast(_, _ string, data interface{}) {
	r.first.Do(func() { time.Sleep(100 * time.Millisecond) })
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, data.(view.View).MoveCount)
}

func TestBroadcastsFollowOperationOrder(t *testing.T) {
	m, _ := newTestManager(t)
	rec := &slowRecorder{}
	m.SetHub(rec)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := m.Place(r.Code, game.Pos{Row: 1, Col: 1})
		assert.NoError(t, err)
	}()
	time.Sleep(20 * time.Millisecond)
	_, err := m.Place(r.Code, game.Pos{Row: 1, Col: 2})
	require.NoError(t, err)
	wg.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []int{1, 2}, rec.counts)
	assert.Equal(t, r.State().MoveCount, rec.counts[len(rec.counts)-1])
}

func TestAttachExcludesConcurrentOperations(t *testing.T) {
	m, rec := newTestManager(t)
	r := mustCreate(t, m, CreateOptions{Blocked: corner()})

	placed := make(chan struct{})
	err := m.Attach(r.Code, func(st game.State) {
		assert.Equal(t, 0, st.MoveCount)
		go func() {
			_, _ = m.Place(r.Code, game.Pos{Row: 2, Col: 2})
			close(placed)
		}()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, rec.count(), "operation ran while attached")
	})
	require.NoError(t, err)
	<-placed
	assert.Equal(t, 1, rec.count())

	assert.ErrorIs(t, m.Attach("NOPE", func(game.State) {}), ErrRoomNotFound)
}

func TestCreateRoomStopsWhenCodesRunOut(t *testing.T) {
	cfg := config.Default()
	cfg.RoomCodeLength = 1
	store := &mapStore{rooms: map[string]*Room{}}
	m := NewManager(store, cfg, zap.NewNop())

	created := 0
	var err error
	for i := 0; i <= len(letters); i++ {
		if _, err = m.CreateRoom(CreateOptions{}); err != nil {
			break
		}
		created++
	}
	assert.ErrorIs(t, err, ErrNoFreeCode)
	assert.LessOrEqual(t, created, len(letters))
	assert.Len(t, store.Rooms(), created)
}

func TestConcurrentCreatesKeepEveryRoom(t *testing.T) {
	cfg := config.Default()
	cfg.RoomCodeLength = 2
	store := &mapStore{rooms: map[string]*Room{}}
	m := NewManager(store, cfg, zap.NewNop())

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		rooms []*Room
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := m.CreateRoom(CreateOptions{})
			if err != nil {
				return
			}
			mu.Lock()
			rooms = append(rooms, r)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, store.Rooms(), len(rooms))
	for _, r := range rooms {
		got, ok := m.Get(r.Code)
		require.True(t, ok)
		assert.Same(t, r, got)
	}
}
