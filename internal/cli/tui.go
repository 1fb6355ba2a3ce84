package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

const (
	// aspect compensates for terminal cells being about twice as tall as wide.
	aspect = 2.0

	viewMinZoom  = 0.1
	viewMaxZoom  = 20.0
	viewZoomStep = 1.25

	viewHeaderLines = 2
	viewFooterLines = 1

	// Default terminal size until the first WindowSizeMsg arrives.
	defaultViewWidth  = 80
	defaultViewHeight = 24
)

// Viewer styles
var (
	viewWallStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	viewZoneStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewAisleStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewItemStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	viewLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

var roleGlyphs = map[catalog.Role]rune{
	catalog.RoleSeat:              'o',
	catalog.RoleTable:             'T',
	catalog.RoleDesk:              'd',
	catalog.RoleWorkstation:       'w',
	catalog.RoleCabinet:           '#',
	catalog.RoleVehicle:           'V',
	catalog.RoleAccessibleVehicle: 'A',
	catalog.RoleMotorcycle:        'm',
	catalog.RoleGeneric:           '*',
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellWall
	cellZone
	cellAisle
	cellItem
	cellLabel
)

type cell struct {
	ch   rune
	kind cellKind
}

// viewModel is the bubbletea model of the interactive layout viewer.
type viewModel struct {
	res    layout.Result
	glyphs map[string]rune

	zoom       float64 // terminal rows per metre
	offX, offY float64 // top-left corner of the viewport, in metres
	labels     bool
	info       bool

	width, height int
}

func newViewModel(res layout.Result, cat *catalog.Catalog) viewModel {
	if cat == nil {
		cat = catalog.Default()
	}
	glyphs := make(map[string]rune)
	for _, p := range res.Placed {
		if _, ok := glyphs[p.ItemType]; ok {
			continue
		}
		glyph := roleGlyphs[catalog.RoleGeneric]
		if it, err := cat.Lookup(res.SpaceType, p.ItemType); err == nil {
			if g, ok := roleGlyphs[it.Role]; ok {
				glyph = g
			}
		}
		glyphs[p.ItemType] = glyph
	}

	m := viewModel{
		res:    res,
		glyphs: glyphs,
		labels: true,
		width:  defaultViewWidth,
		height: defaultViewHeight,
	}
	m.fit()
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.setZoom(m.zoom * viewZoomStep)
		case "-", "_":
			m.setZoom(m.zoom / viewZoomStep)
		case "left", "h":
			m.offX -= 4 / (m.zoom * aspect)
		case "right", "l":
			m.offX += 4 / (m.zoom * aspect)
		case "up", "k":
			m.offY -= 2 / m.zoom
		case "down", "j":
			m.offY += 2 / m.zoom
		case "n":
			m.labels = !m.labels
		case "i":
			m.info = !m.info
		case "0":
			m.fit()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.fit()
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")

	rows := m.canvasRows()
	if m.info {
		rows -= len(m.res.Warnings)
	}
	for _, line := range m.grid(m.width, max(rows, 1)) {
		b.WriteString(renderCells(line))
		b.WriteString("\n")
	}
	if m.info {
		for _, w := range m.res.Warnings {
			b.WriteString(StyleWarning.Render(iconWarning + " " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString(StyleDim.Render("+/- zoom  ←↑↓→ pan  n labels  i info  0 fit  q quit"))
	return b.String()
}

func (m viewModel) header() string {
	title := m.res.SpaceLabel
	if title == "" {
		title = m.res.SpaceType.String()
	}
	line1 := StyleTitle.Render(title) + "  " + verdict(m.res.IsViable)
	line2 := StyleDim.Render(fmt.Sprintf("%g × %g m · %.1f%% occupancy · %d placed · zoom %.2f",
		m.res.Room.Length, m.res.Room.Width, m.res.OccupancyPercent, len(m.res.Placed), m.zoom))
	if n := countUnplaced(m.res.Unplaced); n > 0 {
		line2 += StyleWarning.Render(fmt.Sprintf(" · %d unplaced", n))
	}
	return line1 + "\n" + line2
}

func (m viewModel) canvasRows() int {
	return m.height - viewHeaderLines - viewFooterLines
}

// fit zooms so the whole room fits the viewport and resets panning.
func (m *viewModel) fit() {
	cols := float64(m.width - 2)
	rows := float64(m.canvasRows() - 2)
	w, l := m.res.Room.Width, m.res.Room.Length
	zoom := 1.0
	if w > 0 && l > 0 && cols > 0 && rows > 0 {
		zoom = math.Min(cols/(w*aspect), rows/l)
	}
	m.offX, m.offY = 0, 0
	m.setZoom(zoom)
}

func (m *viewModel) setZoom(z float64) {
	m.zoom = math.Max(viewMinZoom, math.Min(viewMaxZoom, z))
}

// toCol and toRow map room metres to canvas cells. Column and row 0 hold
// the west and north walls when the viewport is not panned.
func (m viewModel) toCol(x float64) int {
	return int(math.Floor((x-m.offX)*m.zoom*aspect)) + 1
}

func (m viewModel) toRow(y float64) int {
	return int(math.Floor((y-m.offY)*m.zoom)) + 1
}

// grid paints the room onto a cols×rows canvas: walls, then zones, then
// items, then labels.
func (m viewModel) grid(cols, rows int) [][]cell {
	g := make([][]cell, rows)
	for r := range g {
		g[r] = make([]cell, cols)
		for c := range g[r] {
			g[r][c] = cell{' ', cellEmpty}
		}
	}
	set := func(c, r int, ch rune, k cellKind) {
		if r >= 0 && r < rows && c >= 0 && c < cols {
			g[r][c] = cell{ch, k}
		}
	}
	span := func(rect layout.Rect) (c0, r0, c1, r1 int) {
		c0, r0 = m.toCol(rect.X), m.toRow(rect.Y)
		c1, r1 = m.toCol(rect.Right()), m.toRow(rect.Bottom())
		return c0, r0, max(c1, c0+1), max(r1, r0+1)
	}
	fill := func(rect layout.Rect, ch rune, k cellKind) {
		c0, r0, c1, r1 := span(rect)
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				set(c, r, ch, k)
			}
		}
	}

	left, top := m.toCol(0)-1, m.toRow(0)-1
	right, bottom := m.toCol(m.res.Room.Width), m.toRow(m.res.Room.Length)
	for c := left + 1; c < right; c++ {
		set(c, top, '─', cellWall)
		set(c, bottom, '─', cellWall)
	}
	for r := top + 1; r < bottom; r++ {
		set(left, r, '│', cellWall)
		set(right, r, '│', cellWall)
	}
	set(left, top, '┌', cellWall)
	set(right, top, '┐', cellWall)
	set(left, bottom, '└', cellWall)
	set(right, bottom, '┘', cellWall)

	for _, z := range m.res.Zones {
		switch z.Kind {
		case layout.ZoneAisle, layout.ZoneLane, layout.ZoneMotorcycle:
			fill(z.Rect, '·', cellAisle)
		default:
			fill(z.Rect, '░', cellZone)
		}
	}

	for _, p := range m.res.Placed {
		fill(p.Rect(), m.glyphs[p.ItemType], cellItem)
	}

	if m.labels {
		for _, p := range m.res.Placed {
			label := strconv.Itoa(p.Instance)
			c0, r0, c1, r1 := span(p.Rect())
			if c1-c0 < len(label) {
				continue
			}
			start := c0 + (c1-c0-len(label))/2
			row := r0 + (r1-r0)/2
			for i, ch := range label {
				set(start+i, row, ch, cellLabel)
			}
		}
	}
	return g
}

// renderCells styles a canvas line, one lipgloss call per run of equal kind.
func renderCells(line []cell) string {
	var b strings.Builder
	var run strings.Builder
	kind := cellEmpty
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(styleFor(kind).Render(run.String()))
		run.Reset()
	}
	for _, c := range line {
		if c.kind != kind {
			flush()
			kind = c.kind
		}
		run.WriteRune(c.ch)
	}
	flush()
	return strings.TrimRight(b.String(), " ")
}

func styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellWall:
		return viewWallStyle
	case cellZone:
		return viewZoneStyle
	case cellAisle:
		return viewAisleStyle
	case cellItem:
		return viewItemStyle
	case cellLabel:
		return viewLabelStyle
	}
	return lipgloss.NewStyle()
}
