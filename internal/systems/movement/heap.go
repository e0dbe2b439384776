package movement

import "github.com/toejough/maze-defence/internal/simcore"

// node is a single A* frontier entry.
type node struct {
	cell  simcore.CellCoord
	gCost uint32
	fCost uint32
}

// nodeHeap is a min-heap over node ordered by (fCost asc, gCost desc,
// column desc, row desc) — the same tie-break the search was distilled
// from, which prefers cheaper, deeper, and lexicographically later cells
// when costs tie, keeping path selection deterministic.
type nodeHeap []node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.fCost != b.fCost {
		return a.fCost < b.fCost
	}
	if a.gCost != b.gCost {
		return a.gCost > b.gCost
	}
	if a.cell.Column != b.cell.Column {
		return a.cell.Column > b.cell.Column
	}
	return a.cell.Row > b.cell.Row
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
