package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/spacelayout/pkg/catalog"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func testDemand(id string, w, d float64, qty, first int) Demand {
	return Demand{
		Item:     catalog.ItemType{ID: id, Width: w, Depth: d, Mount: catalog.MountFloor},
		Quantity: qty,
		First:    first,
	}
}

// cellXs lists every cell of c from left to right.
func cellXs(c cellRow) []float64 {
	var xs []float64
	for k := 0; k < c.n; k++ {
		xs = append(xs, c.at(k))
	}
	return xs
}

func TestBandColumns(t *testing.T) {
	p := rowPattern{ColGap: 0.1}
	tests := []struct {
		name string
		band band
		want []float64
	}{
		{"start", band{X0: 0, X1: 3.5}, []float64{0, 1.1, 2.2}},
		{"end", band{X0: 0, X1: 3.5, Align: alignEnd}, []float64{0.3, 1.4, 2.5}},
		{"center", band{X0: 0, X1: 3.5, Align: alignCenter}, []float64{0.15, 1.25, 2.35}},
		{"too narrow", band{X0: 0, X1: 0.5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellXs(tt.band.columns(1.0, p))
			if len(got) != len(tt.want) {
				t.Fatalf("columns() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Errorf("columns()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBandColumnsGroups(t *testing.T) {
	p := rowPattern{GroupCols: 2, GroupColGap: 1.2}
	got := cellXs(band{X0: 0.2, X1: 9.8}.columns(2, p))
	want := []float64{0.2, 2.2, 5.4, 7.4}
	if len(got) != len(want) {
		t.Fatalf("columns() = %v, want %v", got, want)
	}
	for i := range got {
		if !near(got[i], want[i]) {
			t.Errorf("columns()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBandColumnsWide(t *testing.T) {
	p := rowPattern{ColGap: 0.1, GroupCols: 3, GroupColGap: 0.6}
	tests := []struct {
		name  string
		align align
	}{
		{"start", alignStart},
		{"end", alignEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := band{X0: 0, X1: 1e6, Align: tt.align}.columns(0.5, p)
			// Every group of three cells spans 2.3 m.
			if c.n != 1304348 {
				t.Fatalf("n = %d, want 1304348", c.n)
			}
			if !fits(c.offset(c.n-1)+0.5, 1e6) || fits(c.offset(c.n)+0.5, 1e6) {
				t.Errorf("n = %d is not the last cell that fits", c.n)
			}
			if tt.align == alignStart && c.at(0) != 0 {
				t.Errorf("at(0) = %v, want 0", c.at(0))
			}
			if tt.align == alignEnd && !near(c.at(c.n-1)+0.5, 1e6) {
				t.Errorf("last cell ends at %v, want 1e6", c.at(c.n-1)+0.5)
			}
		})
	}
}

func TestShelfFillWideBand(t *testing.T) {
	s := newShelf([]band{{X0: 0, X1: 1e6}}, 0, 1e6, nil, 0)
	got := s.fill(testDemand("a", 1, 1, 4, 1), 1, 1, rowPattern{ColGap: 0.1})
	if len(got) != 4 {
		t.Fatalf("placed %d, want 4", len(got))
	}
	if !near(got[3].X, 3.3) || got[3].Y != 0 {
		t.Errorf("fourth cell at (%v,%v), want (3.3,0)", got[3].X, got[3].Y)
	}
}

func TestShelfFill(t *testing.T) {
	s := newShelf([]band{{X0: 0, X1: 3.2}}, 0, 10, nil, 0)
	pattern := rowPattern{ColGap: 0.1, RowGap: 0.5}

	got := s.fill(testDemand("a", 1, 1, 5, 1), 1, 1, pattern)
	if len(got) != 5 {
		t.Fatalf("placed %d, want 5", len(got))
	}
	for i, it := range got {
		if it.Instance != i+1 {
			t.Errorf("item %d instance = %d, want %d", i, it.Instance, i+1)
		}
	}
	if got[3].Y != 1.5 || got[3].Row != 1 || got[3].Column != 0 {
		t.Errorf("fourth item = %+v, want second row at y=1.5", got[3])
	}

	// A new item type starts on a fresh row after the lead clearance.
	next := s.fill(testDemand("b", 1, 1, 1, 1), 1, 1, rowPattern{Lead: 1})
	if len(next) != 1 || !near(next[0].Y, 3.5) {
		t.Fatalf("next type = %+v, want y=3.5", next)
	}
	if next[0].Row != 2 {
		t.Errorf("next type row = %d, want 2", next[0].Row)
	}
}

func TestShelfSkipsReserved(t *testing.T) {
	s := newShelf([]band{{X0: 0, X1: 3.2}}, 0, 10, []Rect{{X: 0, Y: 0, W: 1, H: 1}}, 0)
	got := s.fill(testDemand("a", 1, 1, 3, 1), 1, 1, rowPattern{ColGap: 0.1})
	if len(got) != 3 {
		t.Fatalf("placed %d, want 3", len(got))
	}
	if !near(got[0].X, 1.1) || got[0].Column != 1 {
		t.Errorf("first = %+v, want column 1 at x=1.1", got[0])
	}
	if got[2].Row != 1 {
		t.Errorf("third row = %d, want 1", got[2].Row)
	}
}

func TestShelfLimit(t *testing.T) {
	s := newShelf([]band{{X0: 0, X1: 1}}, 0, 2.5, nil, 0)
	got := s.fill(testDemand("a", 1, 1, 10, 1), 1, 1, rowPattern{})
	if len(got) != 2 {
		t.Errorf("placed %d, want 2", len(got))
	}
}

func TestPlaceWall(t *testing.T) {
	zone := Rect{W: 10, H: 1}
	got := placeWall(zone, []Demand{
		testDemand("board", 4, 1, 1, 1),
		testDemand("screen", 3, 1, 1, 1),
	}, 0.2)
	if len(got) != 2 {
		t.Fatalf("placed %d, want 2", len(got))
	}
	if !near(got[0].X, 1.4) || !near(got[1].X, 5.6) {
		t.Errorf("x = %v, %v, want 1.4, 5.6", got[0].X, got[1].X)
	}

	got = placeWall(zone, []Demand{testDemand("board", 4, 1, 3, 1)}, 0.2)
	if len(got) != 2 {
		t.Errorf("placed %d boards, want 2", len(got))
	}
}
