package colorpicker

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNew(t *testing.T) {
	m := New("primary")

	require.Len(t, m.columns, 3)
	for _, col := range m.columns {
		require.Len(t, col, 8)
	}
	require.Equal(t, BrandPresets[0], m.Selected())
	require.False(t, m.InCustomMode())
}

func TestNavigation(t *testing.T) {
	m := New("")

	for range 20 {
		m, _ = m.Update(runes("j"))
	}
	require.Equal(t, len(BrandPresets)-1, m.selected)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, len(BrandPresets)-2, m.selected)

	m, _ = m.Update(runes("l"))
	m, _ = m.Update(runes("l"))
	m, _ = m.Update(runes("l"))
	require.Equal(t, 2, m.column)
	require.Equal(t, GrayscalePresets[len(BrandPresets)-2], m.Selected())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 1, m.column)

	for range 10 {
		m, _ = m.Update(runes("k"))
	}
	require.Equal(t, 0, m.selected)
}

func TestSelectEmitsHexAndHSL(t *testing.T) {
	m := New("accent")
	m, _ = m.Update(runes("j")) // Teal

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SelectMsg)
	require.True(t, ok)
	require.Equal(t, "#27a599", msg.Hex)
	require.Equal(t, "174 62% 40%", msg.HSL)
}

func TestCancel(t *testing.T) {
	_, cmd := New("").Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.IsType(t, CancelMsg{}, cmd())
}

func TestCustomMode_ValidHex(t *testing.T) {
	m, _ := New("").Update(runes("c"))
	require.True(t, m.InCustomMode())

	m = typeText(m, "#AABBCC")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // focus Save
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd().(SelectMsg)
	require.Equal(t, "#aabbcc", msg.Hex)
	require.Equal(t, "210 25% 73%", msg.HSL)
}

func TestCustomMode_InvalidHexShowsError(t *testing.T) {
	m, _ := New("").Update(runes("c"))
	m = typeText(m, "#12345")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.True(t, m.showError)
	require.True(t, m.InCustomMode())
	require.Contains(t, m.View(), "Invalid hex format")
}

func TestCustomMode_ErrorClearsOnValidInput(t *testing.T) {
	m, _ := New("").Update(runes("c"))
	m = typeText(m, "#12345")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showError)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // back to input
	require.Equal(t, focusInput, m.customFocus)
	m = typeText(m, "6")
	require.False(t, m.showError)
}

func TestCustomMode_EscReturnsToPresets(t *testing.T) {
	m, _ := New("").Update(runes("c"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.InCustomMode())
}

func TestCustomMode_FocusCycles(t *testing.T) {
	m, _ := New("").Update(runes("c"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusSave, m.customFocus)
	m, _ = m.Update(runes("l"))
	require.Equal(t, focusCancel, m.customFocus)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusInput, m.customFocus)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, focusCancel, m.customFocus)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.InCustomMode())
}

func TestCustomMode_HJKLTypeIntoInput(t *testing.T) {
	m, _ := New("").Update(runes("c"))
	m = typeText(m, "hjkl")
	require.Equal(t, "hjkl", m.customInput.Value())
	require.Equal(t, focusInput, m.customFocus)
}

func TestSetSelected(t *testing.T) {
	m := New("").SetSelected("#FECA57")
	require.Equal(t, 1, m.column)
	require.Equal(t, "Yellow", m.Selected().Name)
	require.False(t, m.InCustomMode())

	m = New("").SetSelected("#010203")
	require.True(t, m.InCustomMode())
	require.Equal(t, "#010203", m.customInput.Value())

	m = New("").SetSelected("not-a-colour")
	require.False(t, m.InCustomMode())
	require.Equal(t, BrandPresets[0], m.Selected())
}

func TestView(t *testing.T) {
	view := New("primary").View()
	require.Contains(t, view, "Select colour: primary")
	require.Contains(t, view, "Navy")
	require.Contains(t, view, "Charcoal")

	m, _ := New("").Update(runes("c"))
	m = typeText(m, "#27a599")
	view = m.View()
	require.Contains(t, view, "Custom colour")
	require.Contains(t, view, "174 62% 40%")
}

func TestApp_SelectQuits(t *testing.T) {
	tm := teatest.NewTestModel(t, NewApp("accent", "#27a599"), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Teal"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(App)
	result, ok := final.Result()
	require.True(t, ok)
	require.Equal(t, "#0a2333", result.Hex)
	require.Equal(t, "203 67% 12%", result.HSL)
}

func TestApp_CancelQuitsWithoutResult(t *testing.T) {
	tm := teatest.NewTestModel(t, NewApp("primary", "#123d59"), teatest.WithInitialTermSize(80, 24))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(App)
	_, ok := final.Result()
	require.False(t, ok)
}
