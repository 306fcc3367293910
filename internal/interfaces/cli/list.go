package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"px.dev/cli/internal/core/domain/script"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// ScriptView is the serialized form of a script in listings
type ScriptView struct {
	Name        string `json:"name" yaml:"name"`
	Command     string `json:"command" yaml:"command"`
	Executor    string `json:"executor" yaml:"executor"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Dir         string `json:"dir" yaml:"dir"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
}

func viewsOf(scripts []script.Script) []ScriptView {
	views := make([]ScriptView, 0, len(scripts))
	for _, s := range scripts {
		views = append(views, ScriptView{
			Name:        s.Name(),
			Command:     s.CommandLine(nil),
			Executor:    s.Executor().String(),
			Description: s.Description(),
			Dir:         s.Dir(),
			Source:      s.Source(),
		})
	}
	return views
}

// printScripts writes the scripts to w in the requested format
func printScripts(w io.Writer, scripts []script.Script, format string) error {
	views := viewsOf(scripts)

	switch format {
	case formatText, "":
		return printTable(w, views)
	case formatJSON:
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode scripts: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(views); err != nil {
			return fmt.Errorf("failed to encode scripts: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format %q (expected text, json or yaml)", format)
	}
}

func printTable(w io.Writer, views []ScriptView) error {
	renderer := lipgloss.NewRenderer(w)

	if len(views) == 0 {
		_, err := fmt.Fprintln(w, renderer.NewStyle().Foreground(lipgloss.Color("245")).Render("No scripts found"))
		return err
	}

	headerStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	nameStyle := renderer.NewStyle().Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	dimStyle := renderer.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, v.Command, v.Description, v.Source})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("SCRIPT", "COMMAND", "DESCRIPTION", "SOURCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			case col == 3:
				return dimStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
