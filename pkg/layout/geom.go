package layout

import "math"

// eps absorbs floating point noise in geometric comparisons.
const eps = 1e-9

// Rect is an axis-aligned rectangle in metres. X grows to the right, Y grows
// away from the front wall.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= eps || r.H <= eps }

// Intersects reports whether the interiors of r and o overlap. Rectangles
// that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right()-eps && o.X < r.Right()-eps &&
		r.Y < o.Bottom()-eps && o.Y < r.Bottom()-eps
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Inflate grows r by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// fits reports whether length l fits into span s, tolerating rounding noise.
func fits(l, s float64) bool { return l <= s+eps }

// countFit returns how many items of size l separated by gap fit into span s.
func countFit(s, l, gap float64) int {
	if l <= 0 || !fits(l, s) {
		return 0
	}
	return int(math.Floor((s+gap)/(l+gap) + eps))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func anyIntersects(r Rect, others []Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
