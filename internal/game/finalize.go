package game

// Finalize scores both players from their largest components and ends the game.
func (s *State) Finalize() {
	for _, p := range []Player{Blue, Red} {
		lc := LargestComponent(s.Board, p)
		s.Score[p] = lc.Sum
		s.Highlight[p] = lc.Cells
	}
	s.GameOver = true
}

type Outcome struct {
	Winner *Player `json:"winner,omitempty"`
	Draw   bool    `json:"draw"`
}

// Outcome compares final scores. It is meaningless before GameOver.
func (s State) Outcome() Outcome {
	switch {
	case s.Score[Blue] > s.Score[Red]:
		w := Blue
		return Outcome{Winner: &w}
	case s.Score[Red] > s.Score[Blue]:
		w := Red
		return Outcome{Winner: &w}
	default:
		return Outcome{Draw: true}
	}
}
