package world

// Grid is a fixed rows x cols matrix addressed by Point{X: col, Y: row}.
type Grid[T any] struct {
	rows  int
	cols  int
	cells []T
}

func NewGrid[T any](rows, cols int, fill T) *Grid[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]T, rows*cols)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{rows: rows, cols: cols, cells: cells}
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }

func (g *Grid[T]) Within(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Grid[T]) Get(p Point) T {
	if !g.Within(p) {
		var zero T
		return zero
	}
	return g.cells[p.Y*g.cols+p.X]
}

func (g *Grid[T]) Set(p Point, v T) {
	if !g.Within(p) {
		return
	}
	g.cells[p.Y*g.cols+p.X] = v
}
