package game

import "math/rand"

type sessionOptions struct {
	excludeCenter bool
	blocked       *Pos
}

type Option func(*sessionOptions)

// WithExcludeCenter keeps the random blocked cell off the centre square.
func WithExcludeCenter() Option {
	return func(o *sessionOptions) { o.excludeCenter = true }
}

// WithBlocked pins the blocked cell for the first game of the session.
// Off-board positions are ignored.
func WithBlocked(p Pos) Option {
	return func(o *sessionOptions) {
		pp := p
		o.blocked = &pp
	}
}

// Session owns one live game and its undo history.
type Session struct {
	rng     *rand.Rand
	opts    sessionOptions
	state   State
	history *History
}

func NewSession(rng *rand.Rand, opts ...Option) *Session {
	s := &Session{rng: rng}
	for _, o := range opts {
		o(&s.opts)
	}
	blocked := s.randomBlocked()
	if s.opts.blocked != nil && s.opts.blocked.InBounds() {
		blocked = *s.opts.blocked
	}
	s.start(blocked)
	return s
}

func (s *Session) randomBlocked() Pos {
	center := Pos{Size / 2, Size / 2}
	for {
		p := PosFromIndex(s.rng.Intn(Size * Size))
		if s.opts.excludeCenter && p == center {
			continue
		}
		return p
	}
}

func (s *Session) start(blocked Pos) {
	s.history = NewHistory(blocked)
	s.state = s.history.Current()
}

// Place applies a move and records it. Rejections leave the session as it was.
func (s *Session) Place(p Pos) error {
	next := s.state.Clone()
	if err := next.Place(p); err != nil {
		return err
	}
	s.state = next
	s.history.Record(s.state.Snapshot())
	return nil
}

func (s *Session) Undo() error {
	st, err := s.history.Undo()
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// NewGame starts over with a freshly drawn blocked cell.
func (s *Session) NewGame() {
	s.start(s.randomBlocked())
}

// ResetSameBlock starts over keeping the current blocked cell.
func (s *Session) ResetSameBlock() {
	s.start(s.state.Blocked)
}

// State returns a copy of the live state.
func (s *Session) State() State {
	return s.state.Clone()
}

func (s *Session) HistoryLen() int {
	return s.history.Len()
}
