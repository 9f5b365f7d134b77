package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milk9111/cityrun/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long:  `Shows every level with its enemy population, collectibles and how it is finished.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		rows, err := levelRows()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderLevels(rows))
		return nil
	},
}

type levelRow struct {
	Name    string
	Title   string
	Ground  int
	Flying  int
	Pickups []string
	Exit    string
}

func levelRows() ([]levelRow, error) {
	names, err := levels.Names()
	if err != nil {
		return nil, err
	}
	rows := make([]levelRow, 0, len(names))
	for _, name := range names {
		lvl, err := levels.Load(name)
		if err != nil {
			return nil, err
		}
		row := levelRow{Name: lvl.Name, Title: lvl.Title, Exit: lvl.Exit}
		for _, e := range lvl.Entities {
			switch kind := strings.TrimSuffix(path.Base(e.Prefab), ".yaml"); kind {
			case "ground_enemy":
				row.Ground++
			case "flying_enemy":
				row.Flying++
			case "armor", "potion", "gun", "key", "diamond":
				row.Pickups = append(row.Pickups, kind)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var (
	levelsTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	levelsHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	levelsCellStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
	levelsHelpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	levelsTableStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
)

func renderLevels(rows []levelRow) string {
	headers := []string{"Level", "Title", "Ground", "Flying", "Collectibles", "Exit"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Name,
			r.Title,
			fmt.Sprint(r.Ground),
			fmt.Sprint(r.Flying),
			strings.Join(r.Pickups, ", "),
			r.Exit,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	line := func(values []string, style lipgloss.Style) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = style.Width(widths[i] + 2).Render(v)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	lines := []string{line(headers, levelsHeaderStyle)}
	for _, row := range cells {
		lines = append(lines, line(row, levelsCellStyle))
	}

	help := append([]string{"Run 'cityrun play --level <name>' to start on a level."}, controlsHelp...)
	return lipgloss.JoinVertical(lipgloss.Left,
		levelsTitleStyle.Render("City Run"),
		levelsTableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
		levelsHelpStyle.Render(strings.Join(help, "\n")),
	)
}
