package game

type State struct {
	Board     Board     `json:"board"`
	Blocked   Pos       `json:"blocked"`
	MoveCount int       `json:"moveCount"`
	Current   Player    `json:"current"`
	NextValue [2]int    `json:"nextValue"` // Pieces+1 once a player is out of pieces
	GameOver  bool      `json:"gameOver"`
	Score     [2]int    `json:"score"`
	Highlight [2]PosSet `json:"highlight"`
	LastMove  *Pos      `json:"lastMove,omitempty"`
}

func NewState(blocked Pos) State {
	return State{
		Board:     NewBoard(blocked),
		Blocked:   blocked,
		Current:   Blue,
		NextValue: [2]int{1, 1},
		Highlight: [2]PosSet{NewPosSet(), NewPosSet()},
	}
}

// Clone returns a copy sharing no mutable structure with s.
func (s State) Clone() State {
	out := s
	out.Highlight = [2]PosSet{s.Highlight[Blue].Clone(), s.Highlight[Red].Clone()}
	if s.LastMove != nil {
		lm := *s.LastMove
		out.LastMove = &lm
	}
	return out
}

// Placed is the number of pieces p has on the board.
func (s State) Placed(p Player) int {
	return s.NextValue[p] - 1
}
