package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yashsidana/code-clarified/pkg/flow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FunctionListModel - Interactive function selection
// =============================================================================

// FunctionListModel is the bubbletea model for picking a function out of an
// analyzed file. After the program finishes, Selected holds the chosen
// function or nil if the user quit.
type FunctionListModel struct {
	Functions []flow.FunctionFlow
	Cursor    int
	Selected  *flow.FunctionFlow
}

// NewFunctionListModel creates a function list model.
func NewFunctionListModel(functions []flow.FunctionFlow) FunctionListModel {
	return FunctionListModel{Functions: functions}
}

func (m FunctionListModel) Init() tea.Cmd {
	return nil
}

func (m FunctionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Functions)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Functions[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FunctionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Function"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, fn := range m.Functions {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		steps := fmt.Sprintf("%d steps", len(fn.Steps))
		if len(fn.Steps) == 1 {
			steps = "1 step"
		}
		line := fmt.Sprintf("%s%-30s  %s", cursor, signature(fn), listDimStyle.Render(steps))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Functions))))

	return b.String()
}

// signature formats "name(a, b)" for display.
func signature(fn flow.FunctionFlow) string {
	return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(fn.Params, ", "))
}

// pickFunction runs the interactive selector and returns the chosen
// function, or nil if the user quit without selecting.
func pickFunction(functions []flow.FunctionFlow) (*flow.FunctionFlow, error) {
	p := tea.NewProgram(NewFunctionListModel(functions))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(FunctionListModel).Selected, nil
}
