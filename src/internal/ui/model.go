// Package ui is the interactive terminal view of a commit page.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gh-nvat/commitview/src/internal/loader"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/view"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "ui")

type commitLoadedMsg struct {
	result loader.CommitResult
}

type diffLoadedMsg struct {
	result loader.DiffResult
}

// Model is the Bubble Tea state container of the commit view. All page state
// lives in the session, which is only touched from Update.
type Model struct {
	ctx     context.Context
	src     loader.Source
	session *loader.Session
	initial *loader.Ticket

	keys     KeyMap
	styles   styles
	viewport viewport.Model
	now      func() time.Time

	width  int
	height int
	ready  bool

	cursor       int
	sectionLines []int
	history      []models.Coordinates
	status       string
}

// New creates the view and points the session at coords. Incomplete
// coordinates leave the view empty with nothing fetched.
func New(ctx context.Context, src loader.Source, session *loader.Session, coords models.Coordinates) Model {
	m := Model{
		ctx:      ctx,
		src:      src,
		session:  session,
		keys:     defaultKeyMap(),
		styles:   newStyles(view.DefaultPalette),
		viewport: viewport.New(1, 1),
		now:      time.Now,
	}
	if ticket, ok := session.Navigate(coords); ok {
		m.initial = &ticket
	} else {
		logger.WithField("commit", coords.String()).Warn("Incomplete or unchanged coordinates, nothing to load")
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initial == nil {
		return nil
	}
	return m.fetchCmds(*m.initial)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case commitLoadedMsg:
		if m.session.ApplyCommit(msg.result) {
			m.refresh()
		}
		return m, nil

	case diffLoadedMsg:
		if m.session.ApplyDiff(msg.result) {
			m.cursor = 0
			m.viewport.GotoTop()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	sections := len(m.session.Presentation().Sections)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < sections-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.session.Loading() || sections == 0 {
			return m, nil
		}
		m.session.Toggle(m.cursor)

	case key.Matches(msg, m.keys.ExpandAll):
		m.session.SetAll(true)

	case key.Matches(msg, m.keys.CollapseAll):
		m.session.SetAll(false)

	case key.Matches(msg, m.keys.Parent):
		parent := m.session.Commit().FirstParent()
		if parent == "" {
			m.status = "No parent commit"
			m.refresh()
			return m, nil
		}
		from := m.session.Coords()
		cmd := m.navigate(from.WithCommit(parent))
		if cmd != nil {
			m.history = append(m.history, from)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		if len(m.history) == 0 {
			return m, nil
		}
		prev := m.history[len(m.history)-1]
		cmd := m.navigate(prev)
		if cmd != nil {
			m.history = m.history[:len(m.history)-1]
		}
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		ticket, ok := m.session.Reload()
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, m.fetchCmds(ticket)

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

// navigate must be called on the Model that Update returns
func (m *Model) navigate(coords models.Coordinates) tea.Cmd {
	ticket, ok := m.session.Navigate(coords)
	if !ok {
		return nil
	}
	m.cursor = 0
	m.viewport.GotoTop()
	m.refresh()
	return m.fetchCmds(ticket)
}

// fetchCmds issues both requests; their order of arrival is not fixed
func (m Model) fetchCmds(ticket loader.Ticket) tea.Cmd {
	ctx, src := m.ctx, m.src
	return tea.Batch(
		func() tea.Msg {
			return commitLoadedMsg{result: loader.FetchCommit(ctx, src, ticket)}
		},
		func() tea.Msg {
			return diffLoadedMsg{result: loader.FetchDiff(ctx, src, ticket)}
		},
	)
}

// Page composes the current page
func (m Model) Page() view.Page {
	s := m.session
	return view.Compose(view.Input{
		Coords:       s.Coords(),
		Commit:       s.Commit(),
		Presentation: s.Presentation(),
		Loading:      s.Loading(),
		Disclosure:   s.Disclosure(),
		Now:          m.now(),
	})
}

func (m *Model) refresh() {
	content, lines := m.renderContent(m.Page())
	m.sectionLines = lines
	m.viewport.SetContent(content)
	m.followCursor()
}

// followCursor scrolls so the selected section header is visible
func (m *Model) followCursor() {
	if m.cursor >= len(m.sectionLines) {
		return
	}
	line := m.sectionLines[m.cursor]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}
