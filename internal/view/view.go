package view

import (
	"fmt"

	"reverse-chess/internal/game"
)

type CellView struct {
	Kind      string `json:"kind"`            // "empty", "blocked" or "owned"
	Owner     string `json:"owner,omitempty"` // "blue" or "red" when owned
	Value     int    `json:"value,omitempty"`
	Highlight bool   `json:"highlight"`
	Clickable bool   `json:"clickable"`
	LastMove  bool   `json:"lastMove,omitempty"`
}

type ResultView struct {
	BlueScore int    `json:"blueScore"`
	RedScore  int    `json:"redScore"`
	Winner    string `json:"winner"`
}

// View is everything a client needs to redraw the game from scratch.
type View struct {
	Turn      string       `json:"turn"`
	Player    string       `json:"player"`
	Next      string       `json:"next"`
	Current   string       `json:"current"`
	MoveCount int          `json:"moveCount"`
	NextValue [2]int       `json:"nextValue"`
	GameOver  bool         `json:"gameOver"`
	Cells     [][]CellView `json:"cells"`
	Result    *ResultView  `json:"result,omitempty"`
}

func Build(s game.State) View {
	v := View{
		Turn:      TurnText(s),
		Player:    "Current: " + title(s.Current),
		Next:      NextText(s),
		Current:   s.Current.String(),
		MoveCount: s.MoveCount,
		NextValue: s.NextValue,
		GameOver:  s.GameOver,
		Cells:     make([][]CellView, game.Size),
	}

	for r := 0; r < game.Size; r++ {
		v.Cells[r] = make([]CellView, game.Size)
		for c := 0; c < game.Size; c++ {
			p := game.Pos{Row: r, Col: c}
			cell := s.Board.Cells[r][c]
			cv := CellView{
				Kind:      cell.Kind.String(),
				Highlight: s.Highlight[game.Blue].Has(p) || s.Highlight[game.Red].Has(p),
				Clickable: cell.Kind == game.CellEmpty && !s.GameOver,
				LastMove:  s.LastMove != nil && *s.LastMove == p,
			}
			if cell.Kind == game.CellOwned {
				cv.Owner = cell.Owner.String()
				cv.Value = cell.Value
			}
			v.Cells[r][c] = cv
		}
	}

	if s.GameOver {
		v.Result = &ResultView{
			BlueScore: s.Score[game.Blue],
			RedScore:  s.Score[game.Red],
			Winner:    WinnerText(s.Outcome()),
		}
	}
	return v
}

func TurnText(s game.State) string {
	t := s.MoveCount + 1
	if t > game.TotalMoves {
		t = game.TotalMoves
	}
	return fmt.Sprintf("Turn: %d / %d", t, game.TotalMoves)
}

func NextText(s game.State) string {
	return fmt.Sprintf("Next piece — Blue: %s · Red: %s",
		nextValue(s.NextValue[game.Blue]), nextValue(s.NextValue[game.Red]))
}

func WinnerText(o game.Outcome) string {
	if o.Winner == nil {
		return "Draw"
	}
	return "Winner: " + title(*o.Winner)
}

func nextValue(v int) string {
	if v > game.Pieces {
		return "—"
	}
	return fmt.Sprint(v)
}

func title(p game.Player) string {
	if p == game.Blue {
		return "Blue"
	}
	return "Red"
}
