package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"px.dev/cli/internal/core/domain/script"
)

var pickerStyle = lipgloss.NewStyle().Margin(1, 2)

// scriptItem implements list.Item for the script picker
type scriptItem struct {
	script script.Script
}

func (i scriptItem) Title() string { return i.script.Name() }

func (i scriptItem) Description() string {
	if description := i.script.Description(); description != "" {
		return description
	}
	return i.script.CommandLine(nil)
}

func (i scriptItem) FilterValue() string { return i.script.Name() }

// pickerModel holds the state of the interactive script picker
type pickerModel struct {
	list   list.Model
	choice string
	done   bool
}

func newPickerModel(scripts []script.Script) pickerModel {
	items := make([]list.Item, 0, len(scripts))
	for _, s := range scripts {
		items = append(items, scriptItem{script: s})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "px scripts"
	l.SetFilteringEnabled(true)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := pickerStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "enter":
			if m.list.FilterState() == list.Filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(scriptItem); ok {
				m.choice = item.script.Name()
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	return pickerStyle.Render(m.list.View())
}

// runInteractive lets the user pick a script and runs it without arguments
func runInteractive(cmd *cobra.Command, container *CLIContainer) error {
	scripts := container.ScriptService.Scripts()
	if len(scripts) == 0 {
		return printScripts(cmd.OutOrStdout(), scripts, formatText)
	}

	program := tea.NewProgram(newPickerModel(scripts),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("script picker failed: %w", err)
	}

	picked, ok := final.(pickerModel)
	if !ok || picked.choice == "" {
		return nil
	}
	return runScript(cmd.Context(), container, picked.choice, nil)
}
