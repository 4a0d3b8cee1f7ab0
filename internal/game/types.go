package game

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	Size       = 5
	Pieces     = 12
	TotalMoves = Pieces * 2
)

type Player int

const (
	Blue Player = iota
	Red
)

func (p Player) Other() Player {
	if p == Blue {
		return Red
	}
	return Blue
}

func (p Player) String() string {
	if p == Blue {
		return "blue"
	}
	return "red"
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type CellKind int

const (
	CellEmpty CellKind = iota
	CellBlocked
	CellOwned
)

func (k CellKind) String() string {
	switch k {
	case CellBlocked:
		return "blocked"
	case CellOwned:
		return "owned"
	default:
		return "empty"
	}
}

// Cell is a tagged variant. Owner and Value are only meaningful for CellOwned.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Owner Player   `json:"owner"`
	Value int      `json:"value"` // 1..Pieces when owned, 0 otherwise
}

func Empty() Cell   { return Cell{Kind: CellEmpty} }
func Blocked() Cell { return Cell{Kind: CellBlocked} }

func Owned(p Player, v int) Cell {
	return Cell{Kind: CellOwned, Owner: p, Value: v}
}

func (c Cell) OwnedBy(p Player) bool {
	return c.Kind == CellOwned && c.Owner == p
}

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Index is the row-major offset of p.
func (p Pos) Index() int { return p.Row*Size + p.Col }

func PosFromIndex(i int) Pos { return Pos{Row: i / Size, Col: i % Size} }

func (p Pos) String() string { return fmt.Sprintf("%d,%d", p.Row, p.Col) }

// Neighbors4 returns the in-bounds up, down, left and right neighbours of p.
func Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	if p.Row > 0 {
		out = append(out, Pos{p.Row - 1, p.Col})
	}
	if p.Row < Size-1 {
		out = append(out, Pos{p.Row + 1, p.Col})
	}
	if p.Col > 0 {
		out = append(out, Pos{p.Row, p.Col - 1})
	}
	if p.Col < Size-1 {
		out = append(out, Pos{p.Row, p.Col + 1})
	}
	return out
}

// Board is a value type: assigning a Board copies every cell.
type Board struct {
	Cells [Size][Size]Cell `json:"cells"`
}

// NewBoard returns an empty board with blocked as its only blocked cell. It
// panics if blocked is off the board.
func NewBoard(blocked Pos) Board {
	if !blocked.InBounds() {
		panic(fmt.Sprintf("game: blocked cell %v is off the board", blocked))
	}
	var b Board
	b.Cells[blocked.Row][blocked.Col] = Blocked()
	return b
}

func (b Board) CellAt(p Pos) (Cell, error) {
	if !p.InBounds() {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, p.Row, p.Col)
	}
	return b.Cells[p.Row][p.Col], nil
}

func (b *Board) set(p Pos, c Cell) {
	b.Cells[p.Row][p.Col] = c
}

// PosSet is a set of board positions.
type PosSet map[Pos]struct{}

func NewPosSet(ps ...Pos) PosSet {
	s := make(PosSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s PosSet) Has(p Pos) bool {
	_, ok := s[p]
	return ok
}

func (s PosSet) Clone() PosSet {
	out := make(PosSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// Sorted returns the positions in row-major order.
func (s PosSet) Sorted() []Pos {
	out := make([]Pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func (s PosSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
