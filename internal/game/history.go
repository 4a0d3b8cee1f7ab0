package game

// Snapshot is a frozen copy of a State. It never aliases live state.
type Snapshot struct {
	state State
}

func (s State) Snapshot() Snapshot {
	return Snapshot{state: s.Clone()}
}

// Restore returns a fresh copy of the captured state.
func (s Snapshot) Restore() State {
	return s.state.Clone()
}

// History holds one snapshot per successful mutation. The initial snapshot
// is never removed.
type History struct {
	entries []Snapshot
}

func NewHistory(blocked Pos) *History {
	return &History{entries: []Snapshot{NewState(blocked).Snapshot()}}
}

func (h *History) Record(s Snapshot) {
	h.entries = append(h.entries, s)
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Current() State {
	return h.entries[len(h.entries)-1].Restore()
}

// Undo drops the latest snapshot and returns the one before it.
func (h *History) Undo() (State, error) {
	if len(h.entries) <= 1 {
		return State{}, ErrNothingToUndo
	}
	h.entries[len(h.entries)-1] = Snapshot{}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), nil
}
