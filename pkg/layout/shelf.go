package layout

type align int

const (
	alignStart align = iota
	// alignEnd mirrors the band: cells are packed against the right edge
	// with the gap pattern reflected.
	alignEnd
	alignCenter
)

// band is a horizontal span of the room that cells are packed into.
type band struct {
	X0, X1 float64
	Align  align
}

func (b band) width() float64 { return b.X1 - b.X0 }

// rowPattern controls spacing between cells. Groups model paired rows (lab
// benches placed back to back) and desk clusters.
type rowPattern struct {
	ColGap      float64
	GroupCols   int
	GroupColGap float64

	RowGap      float64
	GroupRows   int
	GroupRowGap float64

	// Lead is the minimum clearance between the previous block of rows and
	// the first row of this one.
	Lead float64
}

func (p rowPattern) colGap(i int) float64 {
	if p.GroupCols > 0 && (i+1)%p.GroupCols == 0 {
		return p.GroupColGap
	}
	return p.ColGap
}

func (p rowPattern) rowGap(i int) float64 {
	if p.GroupRows > 0 && (i+1)%p.GroupRows == 0 {
		return p.GroupRowGap
	}
	return p.RowGap
}

// cellRow indexes the w-wide cells that fit in a band in ascending x. Cells
// are computed on demand, so a row only pays for the cells it visits.
type cellRow struct {
	b band
	w float64
	p rowPattern
	n int
}

// columns returns the w-wide cells that fit in b.
func (b band) columns(w float64, p rowPattern) cellRow {
	c := cellRow{b: b, w: w, p: p}
	if w <= 0 || !c.fitsAt(0) {
		return c
	}
	// fitsAt is monotone in i: double past the last cell, then bisect.
	lo, hi := 1, 2
	for c.fitsAt(hi - 1) {
		lo, hi = hi, hi*2
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if c.fitsAt(mid - 1) {
			lo = mid
		} else {
			hi = mid
		}
	}
	c.n = lo
	return c
}

// offset returns the distance of cell i from the aligned edge.
func (c cellRow) offset(i int) float64 {
	groups, gaps := 0, i
	if c.p.GroupCols > 0 {
		groups = i / c.p.GroupCols
		gaps -= groups
	}
	return float64(i)*c.w + float64(gaps)*c.p.ColGap + float64(groups)*c.p.GroupColGap
}

func (c cellRow) fitsAt(i int) bool { return fits(c.offset(i)+c.w, c.b.width()) }

// at returns the left x of the k-th cell from the left.
func (c cellRow) at(k int) float64 {
	switch c.b.Align {
	case alignEnd:
		return c.b.X1 - c.offset(c.n-1-k) - c.w
	case alignCenter:
		used := c.offset(c.n-1) + c.w
		return c.b.X0 + (c.b.width()-used)/2 + c.offset(k)
	default:
		return c.b.X0 + c.offset(k)
	}
}

// shelf packs rows of cells top to bottom. Each row is filled band by band,
// left to right; cells that touch a reserved rectangle are skipped. Every
// call to fill starts on a fresh row.
type shelf struct {
	bands    []band
	y        float64
	limit    float64
	reserved []Rect

	row        int
	lastBottom float64
	used       bool
}

// newShelf returns a shelf spanning bands from top down to limit. Cells
// keep pad metres away from every reserved rectangle.
func newShelf(bands []band, top, limit float64, reserved []Rect, pad float64) *shelf {
	s := &shelf{bands: bands, y: top, limit: limit}
	for _, r := range reserved {
		s.reserved = append(s.reserved, r.Inflate(pad))
	}
	return s
}

// reserve adds an obstacle after construction.
func (s *shelf) reserve(r Rect) {
	s.reserved = append(s.reserved, r)
}

// fill places up to d.Quantity cells of w by h and returns them in placement
// order.
func (s *shelf) fill(d Demand, w, h float64, p rowPattern) []PlacedItem {
	if d.Quantity <= 0 {
		return nil
	}
	cols := make([]cellRow, len(s.bands))
	total := 0
	for i, b := range s.bands {
		cols[i] = b.columns(w, p)
		total += cols[i].n
	}
	if total == 0 {
		return nil
	}
	if s.used {
		s.y = max(s.y, s.lastBottom+p.Lead)
	}

	var out []PlacedItem
	for r := 0; len(out) < d.Quantity && fits(s.y+h, s.limit); r++ {
		col, placed := 0, false
		for bi := range s.bands {
			for k := 0; k < cols[bi].n; k++ {
				if len(out) == d.Quantity {
					break
				}
				x := cols[bi].at(k)
				c := col
				col++
				cell := Rect{X: x, Y: s.y, W: w, H: h}
				if anyIntersects(cell, s.reserved) {
					continue
				}
				out = append(out, PlacedItem{
					ItemType:     d.Item.ID,
					Instance:     d.First + len(out),
					X:            x,
					Y:            s.y,
					Width:        w,
					Height:       h,
					GridPosition: &GridPosition{Row: s.row, Column: c},
				})
				placed = true
			}
		}
		if placed {
			s.row++
		}
		s.lastBottom = s.y + h
		s.used = true
		s.y += h + p.rowGap(r)
	}
	return out
}

// placeWall lines wall-mounted instances up left to right along the top of
// zone, centred as a group. Instances that do not fit are left out in order.
func placeWall(zone Rect, demands []Demand, gap float64) []PlacedItem {
	type slot struct {
		id       string
		instance int
		w, h     float64
	}
	var slots []slot
	used := 0.0

fill:
	for _, d := range demands {
		for i := 0; i < d.Quantity; i++ {
			w, h := d.Item.Width, min(d.Item.Depth, zone.H)
			need := w
			if len(slots) > 0 {
				need += gap
			}
			if !fits(used+need, zone.W) {
				break fill
			}
			slots = append(slots, slot{id: d.Item.ID, instance: d.First + i, w: w, h: h})
			used += need
		}
	}

	out := make([]PlacedItem, 0, len(slots))
	x := zone.X + (zone.W-used)/2
	for i, s := range slots {
		out = append(out, PlacedItem{
			ItemType:     s.id,
			Instance:     s.instance,
			X:            x,
			Y:            zone.Y,
			Width:        s.w,
			Height:       s.h,
			GridPosition: &GridPosition{Row: 0, Column: i},
		})
		x += s.w + gap
	}
	return out
}
