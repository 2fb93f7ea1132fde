package mines

// celltodo is a stack of cell indices threaded through a next array, so a
// flood fill over the whole board allocates once.
type celltodo struct {
	next []int
	head int
}

func newCelltodo(size int) *celltodo {
	return &celltodo{next: make([]int, size), head: -1}
}

func (std *celltodo) add(i int) {
	std.next[i] = std.head
	std.head = i
}

func (std *celltodo) pop() (int, bool) {
	if std.head < 0 {
		return -1, false
	}
	i := std.head
	std.head = std.next[i]
	return i, true
}

// neighbours calls fn for every in-bounds cell around (row, col), excluding
// the cell itself.
func (p GameParams) neighbours(row, col int, fn func(row, col int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if p.ValidatePosition(row+dr, col+dc) {
				fn(row+dr, col+dc)
			}
		}
	}
}
