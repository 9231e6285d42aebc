// Package reorder provides a terminal editor for a layout region's order.
package reorder

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/layout"
	"github.com/zjrosen/weekly/internal/log"
	"github.com/zjrosen/weekly/internal/pubsub"
	"github.com/zjrosen/weekly/internal/ui/styles"
)

const zoneItemPrefix = "reorder-item:"

func makeItemZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneItemPrefix, index)
}

// SavedMsg reports the outcome of writing the order back to the store.
type SavedMsg struct {
	Order []string
	Err   error
}

// Option configures a Model.
type Option func(*Model)

// WithMouse enables click selection through bubblezone. The caller must
// have created the global zone manager.
func WithMouse(enabled bool) Option {
	return func(m *Model) { m.mouse = enabled }
}

// WithChanges reloads the order when listener reports a change to the
// store's key and the working order has no unsaved edits.
func WithChanges(listener *pubsub.ContinuousListener[kv.Change]) Option {
	return func(m *Model) { m.changes = listener }
}

// Model edits a copy of a store's order and writes it back on enter.
type Model struct {
	ctx      context.Context
	store    *layout.Store
	region   string
	items    []string
	original []string
	cursor   int
	grabbed  bool
	mouse    bool
	changes  *pubsub.ContinuousListener[kv.Change]
	width    int
	err      error
	saved    bool
	done     bool
}

// New creates an editor over store's current order.
func New(ctx context.Context, region string, store *layout.Store, opts ...Option) Model {
	order := store.Read()
	m := Model{
		ctx:      ctx,
		store:    store,
		region:   region,
		items:    order,
		original: slices.Clone(order),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return m.changes.Listen()
}

// Items returns the working order.
func (m Model) Items() []string { return slices.Clone(m.items) }

// Saved reports whether the order was written before the program exited.
func (m Model) Saved() bool { return m.saved }

// Err returns the last save error.
func (m Model) Err() error { return m.err }

// Dirty reports whether the working order differs from the stored one.
func (m Model) Dirty() bool { return !slices.Equal(m.items, m.original) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.saved, m.done = true, true
		m.original = slices.Clone(msg.Order)
		return m, tea.Quit

	case pubsub.Event[kv.Change]:
		return m.handleChange(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.grabbed {
			m = m.shift(1)
		} else if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.grabbed {
			m = m.shift(-1)
		} else if m.cursor > 0 {
			m.cursor--
		}
	case "J", "shift+down":
		m = m.shift(1)
	case "K", "shift+up":
		m = m.shift(-1)
	case " ":
		if len(m.items) > 0 {
			m.grabbed = !m.grabbed
		}
	case "r":
		m.items = m.store.Defaults()
		m.cursor = min(m.cursor, max(len(m.items)-1, 0))
		m.grabbed = false
	case "enter":
		m.grabbed = false
		return m, m.saveCmd()
	case "esc", "q", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) shift(delta int) Model {
	to := m.cursor + delta
	if to < 0 || to >= len(m.items) {
		return m
	}
	m.items = layout.Move(m.items, m.cursor, to)
	m.cursor = to
	return m
}

func (m Model) handleChange(e pubsub.Event[kv.Change]) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.changes != nil {
		next = m.changes.Listen()
	}
	if e.Payload.Key != m.store.Key() || m.Dirty() || m.grabbed {
		return m, next
	}
	order := m.store.Reload(m.ctx)
	if !slices.Equal(order, m.items) {
		log.Debug(log.CatUI, "Reloaded layout after external change", "key", m.store.Key())
	}
	m.items = order
	m.original = slices.Clone(order)
	m.cursor = min(m.cursor, max(len(order)-1, 0))
	return m, next
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if !m.mouse || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m
	}
	for i := range m.items {
		if z := zone.Get(makeItemZoneID(i)); z != nil && z.InBounds(msg) {
			if m.grabbed {
				m.items = layout.Move(m.items, m.cursor, i)
				m.grabbed = false
			}
			m.cursor = i
			return m
		}
	}
	return m
}

func (m Model) saveCmd() tea.Cmd {
	ctx, store, order := m.ctx, m.store, slices.Clone(m.items)
	return func() tea.Msg {
		err := store.Write(ctx, order)
		if err != nil {
			log.ErrorErr(log.CatUI, "Saving layout order failed", err, "key", store.Key())
		}
		return SavedMsg{Order: order, Err: err}
	}
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	width := 0
	for _, item := range m.items {
		width = max(width, ansi.StringWidth(item))
	}
	width = max(width+4, 24)
	if m.width > 0 {
		width = min(width, m.width-2)
	}

	var b strings.Builder
	title := "Reorder " + m.region
	if m.Dirty() {
		title += " *"
	}
	b.WriteString(styles.TitleStyle.Render(title) + "\n\n")

	for i, item := range m.items {
		prefix := "  "
		if i == m.cursor {
			prefix = styles.SelectionIndicatorStyle.Render("> ")
		}
		line := styles.PadRight(fmt.Sprintf("%s%d. %s", prefix, i+1, styles.Truncate(item, width-6)), width)
		if i == m.cursor && m.grabbed {
			line = styles.GrabbedStyle.Render(line)
		}
		if m.mouse {
			line = zone.Mark(makeItemZoneID(i), line)
		}
		b.WriteString(line + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + styles.ErrorStyle.Render("save failed: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + styles.MutedStyle.Render("j/k move  space grab  J/K shift  r defaults  enter save  esc cancel"))

	if m.mouse {
		return zone.Scan(b.String())
	}
	return b.String()
}
