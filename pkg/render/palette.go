package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/spacelayout/pkg/layout"
)

const (
	defaultFill   = "#9CA3AF"
	defaultStroke = "#6B7280"

	viableOutline   = "#10B981"
	unviableOutline = "#EF4444"

	backgroundColor = "#FFFFFF"
	floorColor      = "#F9FAFB"
	gridColor       = "#E5E7EB"
	textColor       = "#111827"
	mutedTextColor  = "#6B7280"
)

type zoneStyle struct {
	fill, stroke string
	opacity      float64
	dashed       bool
}

var zoneStyles = map[layout.ZoneKind]zoneStyle{
	layout.ZoneFront:      {"#E5E7EB", "#9CA3AF", 0.6, false},
	layout.ZoneInstructor: {"#F97316", "#EA580C", 0.25, false},
	layout.ZoneStage:      {"#FDE68A", "#D97706", 0.5, false},
	layout.ZoneReception:  {"#BFDBFE", "#3B82F6", 0.5, false},
	layout.ZoneTable:      {"#FBCFE8", "#DB2777", 0.4, true},
	layout.ZoneAisle:      {"#F3F4F6", "#D1D5DB", 0.5, true},
	layout.ZoneLane:       {"#D1D5DB", "#9CA3AF", 0.5, true},
	layout.ZoneMotorcycle: {"#EDE9FE", "#9333EA", 0.4, true},
	layout.ZoneCabinets:   {"#E5E7EB", "#4B5563", 0.4, true},
}

func styleForZone(k layout.ZoneKind) zoneStyle {
	if s, ok := zoneStyles[k]; ok {
		return s
	}
	return zoneStyle{defaultFill, defaultStroke, 0.3, true}
}

// parseHex decodes #RGB or #RRGGBB into components in [0, 1]. Malformed
// colours decode as mid grey.
func parseHex(s string) (r, g, b float64) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return 0.5, 0.5, 0.5
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}
