package game

import "fmt"

// Place puts the current player's next piece on p. A rejected placement
// leaves s untouched.
func (s *State) Place(p Pos) error {
	if s.GameOver {
		return fmt.Errorf("%w: game is over", ErrInvalidPlacement)
	}
	cell, err := s.Board.CellAt(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlacement, err)
	}
	if cell.Kind != CellEmpty {
		return fmt.Errorf("%w: cell (%d,%d) is %s", ErrInvalidPlacement, p.Row, p.Col, cell.Kind)
	}

	player := s.Current
	value := s.NextValue[player]
	if value > Pieces {
		return fmt.Errorf("%w: %s has no pieces left", ErrInvalidPlacement, player)
	}

	s.Board.set(p, Owned(player, value))
	s.MoveCount++
	s.NextValue[player]++
	s.Current = player.Other()
	last := p
	s.LastMove = &last

	if s.MoveCount >= TotalMoves {
		s.Finalize()
	}
	return nil
}

// LegalMoves lists every empty cell in row-major order, or nothing once the
// game is over.
func (s State) LegalMoves() []Pos {
	if s.GameOver || s.NextValue[s.Current] > Pieces {
		return nil
	}
	moves := make([]Pos, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.Board.Cells[r][c].Kind == CellEmpty {
				moves = append(moves, Pos{r, c})
			}
		}
	}
	return moves
}
