package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yashsidana/code-clarified/pkg/flow"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testFunctions() []flow.FunctionFlow {
	return []flow.FunctionFlow{
		{Name: "first", Params: []string{"a"}, Steps: []flow.Step{flow.Return("a")}},
		{Name: "second", Params: []string{"x", "y"}},
		{Name: "third"},
	}
}

func TestFunctionListNavigation(t *testing.T) {
	m := NewFunctionListModel(testFunctions())

	next, _ := m.Update(keyMsg("j"))
	m = next.(FunctionListModel)
	if m.Cursor != 1 {
		t.Fatalf("cursor after j = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(FunctionListModel)
	next, _ = m.Update(keyMsg("down"))
	m = next.(FunctionListModel)
	if m.Cursor != 2 {
		t.Fatalf("cursor should clamp at last entry, got %d", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(FunctionListModel)
	if m.Cursor != 1 {
		t.Fatalf("cursor after k = %d, want 1", m.Cursor)
	}
}

func TestFunctionListSelect(t *testing.T) {
	m := NewFunctionListModel(testFunctions())

	next, _ := m.Update(keyMsg("j"))
	m = next.(FunctionListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(FunctionListModel)

	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if m.Selected == nil || m.Selected.Name != "second" {
		t.Fatalf("Selected = %+v, want second", m.Selected)
	}
}

func TestFunctionListQuitWithoutSelection(t *testing.T) {
	m := NewFunctionListModel(testFunctions())

	next, cmd := m.Update(keyMsg("q"))
	m = next.(FunctionListModel)

	if cmd == nil {
		t.Fatal("q should quit the program")
	}
	if m.Selected != nil {
		t.Fatalf("Selected = %+v, want nil", m.Selected)
	}
}

func TestFunctionListView(t *testing.T) {
	m := NewFunctionListModel(testFunctions())
	view := m.View()

	for _, want := range []string{"first(a)", "second(x, y)", "third()", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSignature(t *testing.T) {
	fn := flow.FunctionFlow{Name: "compute", Params: []string{"a", "b"}}
	if got := signature(fn); got != "compute(a, b)" {
		t.Errorf("signature = %q", got)
	}
}
