package game

// Component is a maximal 4-connected group of one player's pieces.
type Component struct {
	Size  int    `json:"size"`
	Sum   int    `json:"sum"`
	Cells PosSet `json:"cells"`
}

// better reports whether c beats o under (size desc, sum desc).
func (c Component) better(o Component) bool {
	if c.Size != o.Size {
		return c.Size > o.Size
	}
	return c.Sum > o.Sum
}

// Components partitions p's pieces into 4-connected components, in the order
// their first cell appears in a row-major scan.
func Components(b Board, p Player) []Component {
	var visited [Size][Size]bool
	var comps []Component

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if visited[r][c] || !b.Cells[r][c].OwnedBy(p) {
				continue
			}

			// BFS
			queue := []Pos{{r, c}}
			visited[r][c] = true
			comp := Component{Cells: NewPosSet()}

			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				comp.Cells[cur] = struct{}{}
				comp.Size++
				comp.Sum += b.Cells[cur.Row][cur.Col].Value

				for _, n := range Neighbors4(cur) {
					if visited[n.Row][n.Col] || !b.Cells[n.Row][n.Col].OwnedBy(p) {
						continue
					}
					visited[n.Row][n.Col] = true
					queue = append(queue, n)
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// LargestComponent picks p's scoring component: largest size, then largest
// sum. Full ties keep the component discovered first in scan order. A player
// with no pieces gets a zero Component with an empty cell set.
func LargestComponent(b Board, p Player) Component {
	best := Component{Cells: NewPosSet()}
	for i, c := range Components(b, p) {
		if i == 0 || c.better(best) {
			best = c
		}
	}
	return best
}
