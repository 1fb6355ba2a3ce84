package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/catalog"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "catalog [space-type]",
		Short: "List space types and item footprints",
		Long: `List space types and item footprints.

Without arguments every space type is listed. Space types accept their
canonical id or any known label ("aula", "laboratorio", "parqueadero", ...).
Use --export to print the built-in catalog as TOML, a starting point for a
custom --catalog file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if export {
				_, err := cmd.OutOrStdout().Write(catalog.DefaultTOML())
				return err
			}
			cat, _, err := c.loadCatalog()
			if err != nil {
				return err
			}
			if cat == nil {
				cat = catalog.Default()
			}
			if len(args) == 0 {
				return printCatalog(cat, cat.Spaces())
			}
			st, ok := catalog.ParseSpaceType(args[0])
			if !ok {
				return fmt.Errorf("unknown space type %q", args[0])
			}
			return printCatalog(cat, []catalog.SpaceType{st})
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "print the built-in catalog as TOML")
	return cmd
}

func printCatalog(cat *catalog.Catalog, spaces []catalog.SpaceType) error {
	p := cat.Params()
	printKeyValue("Utilization", fmt.Sprintf("%.0f%%", p.UtilizationFactor*100))
	printKeyValue("Aisle", fmt.Sprintf("%.2f m", p.DefaultAisleWidth))
	printKeyValue("Instructor", fmt.Sprintf("%.1f m²", p.InstructorArea))
	printNewline()

	for _, st := range spaces {
		space, ok := cat.Space(st)
		if !ok {
			return fmt.Errorf("space type %s is not in the catalog", st)
		}
		fmt.Println(StyleTitle.Render(space.Name) + StyleDim.Render("  "+st.String()))
		fmt.Println(itemTable(space.Items).Render())
		printNewline()
	}
	return nil
}

func itemTable(items []catalog.ItemType) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID,
			it.Name,
			fmt.Sprintf("%.2f", it.Width),
			fmt.Sprintf("%.2f", it.Depth),
			fmt.Sprintf("%.2f", it.Area()),
			string(it.Role),
			string(it.Mount),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "W (m)", "D (m)", "Area (m²)", "Role", "Mount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col >= 2 && col <= 4:
				return numStyle
			}
			return cellStyle
		})
}
