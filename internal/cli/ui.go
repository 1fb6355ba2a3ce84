package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spacelayout/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, viable
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, not viable
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleViable    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleNotViable = lipgloss.NewStyle().Bold(true).Foreground(colorRed)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Result Display
// =============================================================================

// printStats prints placement statistics on a single line.
func printStats(placed, unplaced int, cached bool) {
	parts := []string{fmt.Sprintf("%d placed", placed)}
	if unplaced > 0 {
		parts = append(parts, fmt.Sprintf("%d unplaced", unplaced))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// verdict renders the viability of a result as a coloured word.
func verdict(viable bool) string {
	if viable {
		return styleViable.Render("viable")
	}
	return styleNotViable.Render("not viable")
}

// printResult prints the area analysis of a layout result.
func printResult(res layout.Result) {
	title := res.SpaceLabel
	if title == "" {
		title = res.SpaceType.String()
	}
	fmt.Println(StyleTitle.Render(title) + "  " + verdict(res.IsViable) + StyleDim.Render("  ("+res.Source+")"))
	printKeyValue("Room", fmt.Sprintf("%g × %g m  (%.1f m²)", res.Room.Length, res.Room.Width, res.RoomArea))
	printKeyValue("Usable", fmt.Sprintf("%.1f m²", res.UsableArea))
	printKeyValue("Required", fmt.Sprintf("%.1f m²", res.RequiredArea))
	printKeyValue("Occupancy", fmt.Sprintf("%.1f%%", res.OccupancyPercent))
	if res.AisleWidth > 0 {
		printKeyValue("Aisle", fmt.Sprintf("%.2f m", res.AisleWidth))
	}

	for _, line := range res.Breakdown {
		name := line.Name
		if name == "" {
			name = line.ItemType
		}
		printDetail("%-24s %4d × %6.2f m² = %7.2f m²", name, line.Quantity, line.UnitArea, line.TotalArea)
	}
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	for _, r := range res.Recommendations {
		printInfo("%s", r)
	}
}

// formatUnplaced renders the unplaced counts as "id ×n" pairs in stable order.
func formatUnplaced(res layout.Result) string {
	if len(res.Unplaced) == 0 {
		return ""
	}
	var parts []string
	for _, line := range res.Breakdown {
		if n := res.Unplaced[line.ItemType]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s ×%d", line.ItemType, n))
		}
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
