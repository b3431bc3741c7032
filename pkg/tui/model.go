// Package tui renders the wallpaper carousel in the terminal with
// half-block thumbnails, driving a picker session from key input and a
// fixed-rate frame tick.
package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faypicker/fay/pkg/picker"
)

// frameInterval paces the render loop. Thumbnail building and the
// auto-preview dwell timer both advance once per frame.
const frameInterval = 33 * time.Millisecond

// holdRepeatWindow separates fresh key presses from terminal key repeat.
// Two navigation keys inside the window count as holding the key down.
const holdRepeatWindow = 150 * time.Millisecond

// thumbBuildBudget is the number of thumbnail jobs built per idle frame.
const thumbBuildBudget = 1

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// renderable is implemented by textures that carry pre-rendered cell art.
type renderable interface {
	Render() string
}

// Model is the bubbletea model for the carousel picker.
type Model struct {
	session  *picker.Session
	keys     carouselKeyMap
	cardCols int
	cardRows int

	width   int
	height  int
	lastNav time.Time
	done    bool
}

// NewModel creates the carousel over an existing session. cardCols and
// cardRows give the cell box thumbnails were rendered for and bound each
// card's size.
func NewModel(session *picker.Session, cardCols, cardRows int) Model {
	return Model{
		session:  session,
		keys:     defaultCarouselKeyMap(),
		cardCols: cardCols,
		cardRows: cardRows,
	}
}

// Done reports whether the model quit the program.
func (m Model) Done() bool { return m.done }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		navigationHeld := !m.lastNav.IsZero() && time.Since(m.lastNav) < holdRepeatWindow
		if !navigationHeld {
			m.session.ProcessThumbnails(thumbBuildBudget)
		}
		m.session.TickDwell(frameInterval, navigationHeld)
		return m, frameTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.session.MoveBy(-1, m.freshPress())
			m.lastNav = time.Now()
		case key.Matches(msg, m.keys.Right):
			m.session.MoveBy(1, m.freshPress())
			m.lastNav = time.Now()
		case key.Matches(msg, m.keys.Confirm):
			m.session.Confirm()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.session.Cancel()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rescan):
			m.session.Rescan()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) freshPress() bool {
	return m.lastNav.IsZero() || time.Since(m.lastNav) >= holdRepeatWindow
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	images := m.session.Images()
	if len(images) == 0 {
		return lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("no images found"),
			helpStyle.Render("r rescan · esc/q quit"),
		)
	}

	visible := m.session.VisibleCards()
	side := visible / 2
	selected := m.session.Selected()

	cards := make([]string, 0, visible)
	for rel := -side; rel <= side; rel++ {
		idx := ((selected+rel)%len(images) + len(images)) % len(images)
		cards = append(cards, m.renderCard(images[idx], rel == 0))
	}
	carousel := lipgloss.JoinHorizontal(lipgloss.Center, cards...)

	title := titleStyle.Render(filepath.Base(images[selected]))
	counter := counterStyle.Render(fmt.Sprintf(" %d/%d", selected+1, len(images)))
	footer := helpStyle.Render(m.helpLine())

	view := lipgloss.JoinVertical(lipgloss.Center, carousel, title+counter, footer)
	if m.width > 0 {
		view = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
	}
	return view
}

func (m Model) renderCard(imagePath string, isSelected bool) string {
	content := placeholderStyle.Width(m.cardCols).Height(m.cardRows).Render("building…")
	if texture := m.session.Texture(imagePath); texture != nil {
		if r, ok := texture.(renderable); ok {
			content = r.Render()
		}
	}

	if isSelected {
		return selectedCardStyle.Render(content)
	}
	return cardStyle.Render(content)
}

func (m Model) helpLine() string {
	line := ""
	for i, binding := range m.keys.helpBindings() {
		if i > 0 {
			line += " · "
		}
		line += binding.Help().Key + " " + binding.Help().Desc
	}
	return line
}

// Run drives the carousel to completion on the user's terminal. The
// session's exit kind records how it ended; the caller still owns session
// shutdown and persistence.
func Run(session *picker.Session, cardCols, cardRows int) error {
	program := tea.NewProgram(NewModel(session, cardCols, cardRows), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
