package colorpicker

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App runs a Model as a standalone program and records the outcome.
type App struct {
	picker   Model
	width    int
	height   int
	result   SelectMsg
	selected bool
	done     bool
}

// NewApp creates a program model with the cursor on current.
func NewApp(title, current string) App {
	return App{picker: New(title).SetSelected(current)}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.done = true
			return a, tea.Quit
		}
	case SelectMsg:
		a.result, a.selected, a.done = msg, true, true
		return a, tea.Quit
	case CancelMsg:
		a.done = true
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if a.done {
		return ""
	}
	if a.width == 0 || a.height == 0 {
		return a.picker.View()
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.picker.View())
}

// Result returns the chosen colour; ok is false when the user cancelled.
func (a App) Result() (SelectMsg, bool) {
	return a.result, a.selected
}
