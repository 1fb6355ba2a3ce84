package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/spacelayout/pkg/layout"
)

// RenderSVG draws res as a standalone SVG document. Output is a pure
// function of res and the options.
func RenderSVG(res layout.Result, opts ...Option) []byte {
	s := buildScene(res, newRenderer(opts...))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif">`+"\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundColor)

	writeLabel(&buf, s.title)
	writeShape(&buf, s.floor)

	if len(s.grid) > 0 {
		buf.WriteString(`  <g class="grid" stroke="` + gridColor + `" stroke-width="0.5">` + "\n")
		for i, v := range s.grid {
			if i < s.gridCols {
				fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", v, s.floor.y, v, s.floor.y+s.floor.h)
			} else {
				fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", s.floor.x, v, s.floor.x+s.floor.w, v)
			}
		}
		buf.WriteString("  </g>\n")
	}

	for _, z := range s.zones {
		writeShape(&buf, z)
	}
	for _, it := range s.items {
		writeShape(&buf, it)
	}
	for _, l := range s.labels {
		writeLabel(&buf, l)
	}
	writeLegend(&buf, s)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, sh shape) {
	attrs := fmt.Sprintf(`fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"`,
		sh.fill, sh.opacity, sh.stroke, sh.strokeWidth)
	if sh.dashed {
		attrs += ` stroke-dasharray="6 4"`
	}
	if sh.id != "" {
		attrs = fmt.Sprintf(`id="%s" `, escapeXML(sh.id)) + attrs
	}
	if sh.class != "" {
		attrs = fmt.Sprintf(`class="%s" `, sh.class) + attrs
	}

	switch sh.kind {
	case shapeRounded:
		fmt.Fprintf(buf, `  <rect %s x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f"/>`+"\n",
			attrs, sh.x, sh.y, sh.w, sh.h, sh.radius)
	case shapeEllipse:
		fmt.Fprintf(buf, `  <ellipse %s cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f"/>`+"\n",
			attrs, sh.x+sh.w/2, sh.y+sh.h/2, sh.w/2, sh.h/2)
	case shapeCircle:
		fmt.Fprintf(buf, `  <circle %s cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n",
			attrs, sh.x+sh.w/2, sh.y+sh.h/2, sh.radius)
	default:
		fmt.Fprintf(buf, `  <rect %s x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			attrs, sh.x, sh.y, sh.w, sh.h)
	}
}

func writeLabel(buf *bytes.Buffer, l label) {
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="%s">%s</text>`+"\n",
		l.class, l.x, l.y, l.size, l.color, l.anchor, escapeXML(l.text))
}

func writeLegend(buf *bytes.Buffer, s scene) {
	if len(s.legend) == 0 {
		return
	}
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, e := range s.legend {
		y := s.legendTop + float64(i)*legendRow
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.0f" height="%.0f" fill="%s" stroke="%s"/>`+"\n",
			Padding, y, legendSwatch, legendSwatch, e.fill, e.stroke)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="12" fill="%s">%s</text>`+"\n",
			Padding+legendSwatch+8, y+legendSwatch-3, textColor, escapeXML(e.text))
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
