package teaview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/nav"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

type keyMap struct {
	Advance key.Binding
	Retreat key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Advance: key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "next")),
		Retreat: key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back gesture")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	buttonStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

type model struct {
	view   *View
	keys   keyMap
	width  int
	height int
	err    error
	fatal  error
}

func newModel(v *View) model {
	return model{view: v, keys: defaultKeyMap()}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case stateMsg:
		m.err = nil
		return m, nil
	case dispatchedMsg:
		m.err = msg.err
		if msg.err != nil && !router.IsUnknownRoute(msg.err) && !router.IsInvalidReset(msg.err) {
			// the view itself failed; stop rather than show a stale stack
			m.fatal = msg.err
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Advance):
			return m, m.dispatch(nav.Advance())
		case key.Matches(msg, m.keys.Retreat):
			return m, m.dispatch(nav.Retreat())
		case key.Matches(msg, m.keys.Back):
			return m, m.dispatch(router.Back{})
		}
	}
	return m, nil
}

// dispatch runs off the event loop: a dispatch renders, and rendering
// sends a message to the program.
func (m model) dispatch(action store.Action) tea.Cmd {
	return func() tea.Msg {
		return dispatchedMsg{err: m.view.send(action)}
	}
}

func (m model) View() string {
	state := m.view.Rendered()
	if state.Len() == 0 {
		return ""
	}
	focused := state.Focused()
	screen, _ := m.view.host.Registry().Lookup(focused.RouteName)
	return renderScreen(m.view, screen, state, m.width, m.height, m.err)
}

func renderScreen(v *View, screen router.Screen, state *router.State, width, height int, err error) string {
	loc := v.host.Localizer()

	title := loc.Text(screen.TitleID, screen.Title)
	if title == "" {
		title = state.Focused().RouteName
	}
	button := loc.Text(screen.ButtonID, screen.Button)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	if button != "" {
		b.WriteString(buttonStyle.Render(button))
		b.WriteString("\n\n")
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("%s  %s  %s  (%d/%d)",
		loc.Text("hint.advance", "Enter: next"),
		loc.Text("hint.retreat", "B: back"),
		loc.Text("hint.quit", "Q: quit"),
		state.Index+1, state.Len())))
	if err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(loc.Text("error.title", "Navigation error") + ": " + err.Error()))
	}

	page := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%06x", screen.Background))).
		Foreground(lipgloss.Color(contrast(screen.Background))).
		Padding(1, 4)
	if width > 0 && height > 0 {
		page = page.Width(width).Height(height)
	}
	return page.Render(b.String())
}

// contrast picks black or white text for a background colour.
func contrast(rgb uint32) string {
	r, g, b := (rgb>>16)&0xFF, (rgb>>8)&0xFF, rgb&0xFF
	if r*299+g*587+b*114 > 128_000 {
		return "#000000"
	}
	return "#ffffff"
}
