package world

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Unplaced marks an entity that holds no cell.
var Unplaced = Point{X: -1, Y: -1}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sign() Point {
	return Point{X: sign(p.X), Y: sign(p.Y)}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) IsPlaced() bool {
	return p != Unplaced
}

func DistanceSq(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Adjacent reports 4-neighbourhood adjacency; a point is not adjacent to itself.
func Adjacent(a, b Point) bool {
	return (a.X == b.X && abs(a.Y-b.Y) == 1) ||
		(a.Y == b.Y && abs(a.X-b.X) == 1)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
