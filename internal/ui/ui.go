package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/store"
	"github.com/desertthunder/scorelib/internal/view"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	store     store.ScoreStore
	owner     string
	view      ViewState
	width     int
	height    int
	scoreList list.Model
	scores    []models.Score
	search    textinput.Model
	searching bool
	sortIndex int
	desc      bool
	selected  *models.Score
	err       error
	help      help.Model
	keys      keyMap
}

type scoresLoadedMsg struct {
	scores []models.Score
	err    error
}

type scoreDeletedMsg struct {
	err error
}

// NewModel creates a new TUI model over the given record store.
func NewModel(ctx context.Context, st store.ScoreStore, owner string) *Model {
	search := textinput.New()
	search.Placeholder = "title, composer, arranger (* and ? wildcards)"
	search.Prompt = "/ "

	sortIndex := 0
	for i, field := range view.SortFields {
		if field == "createdAt" {
			sortIndex = i
			break
		}
	}

	scoreList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	scoreList.Title = "Score Library"
	scoreList.SetShowHelp(false)
	scoreList.SetFilteringEnabled(false)

	return &Model{
		ctx:       ctx,
		store:     st,
		owner:     owner,
		view:      ListView,
		scoreList: scoreList,
		search:    search,
		sortIndex: sortIndex,
		desc:      true,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the collection from the store.
func (m *Model) Init() tea.Cmd {
	return m.loadScores()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scoreList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case scoresLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.scores = msg.scores
		m.applyView()
		return m, nil

	case scoreDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.selected = nil
		m.view = ListView
		return m, m.loadScores()
	}

	var cmd tea.Cmd
	m.scoreList, cmd = m.scoreList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

// applyView recomputes the filtered, sorted item list from the current
// search pattern and sort settings.
func (m *Model) applyView() {
	result, err := view.Apply(m.scores, view.Filter{Search: m.search.Value()}, view.Sort{
		Field:      view.SortFields[m.sortIndex],
		Descending: m.desc,
	})
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, len(result.Scores))
	for i, s := range result.Scores {
		items[i] = scoreItem{score: s}
	}
	m.scoreList.SetItems(items)
	m.scoreList.Title = fmt.Sprintf("Score Library (%d of %d)", result.Shown, result.Total)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.applyView()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyView()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.sort):
		m.sortIndex = (m.sortIndex + 1) % len(view.SortFields)
		m.applyView()
		return m, nil
	case key.Matches(msg, m.keys.order):
		m.desc = !m.desc
		m.applyView()
		return m, nil
	case key.Matches(msg, m.keys.reload):
		return m, m.loadScores()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.scoreList.SelectedItem().(scoreItem); ok {
			score := item.score
			m.selected = &score
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.scoreList.SelectedItem().(scoreItem); ok {
			score := item.score
			m.selected = &score
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.scoreList, cmd = m.scoreList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.selected = nil
		m.view = ListView
		return m, nil
	case "d":
		m.view = ConfirmDeleteView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ListView
		return m, nil
	case "y":
		return m, m.deleteSelected()
	}
	return m, nil
}

func (m *Model) loadScores() tea.Cmd {
	return func() tea.Msg {
		scores, err := m.store.ListByOwner(m.ctx, m.owner)
		return scoresLoadedMsg{scores: scores, err: err}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	return func() tea.Msg {
		if m.selected == nil {
			return scoreDeletedMsg{}
		}
		return scoreDeletedMsg{err: m.store.Delete(m.ctx, m.selected.ID)}
	}
}

func (m *Model) renderList() string {
	sortLine := fmt.Sprintf("sort: %s", view.SortFields[m.sortIndex])
	if m.desc {
		sortLine += " ↓"
	} else {
		sortLine += " ↑"
	}

	var searchLine string
	if m.searching {
		searchLine = m.search.View()
	} else if m.search.Value() != "" {
		searchLine = styles.help.Render(fmt.Sprintf("filter: %s", m.search.Value()))
	}

	header := styles.help.Render(sortLine)
	if searchLine != "" {
		header = fmt.Sprintf("%s  %s", header, searchLine)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.sort, m.keys.order, m.keys.enter, m.keys.delete, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", header, m.scoreList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No score selected\n\nPress esc to go back")
	}

	s := m.selected
	title := styles.title.Render(s.Title)

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Composer: %s\n", s.Composer)
	if s.Arranger != "" {
		fmt.Fprintf(&sb, "Arranger: %s\n", s.Arranger)
	}
	if s.Genre != "" {
		fmt.Fprintf(&sb, "Genre: %s\n", s.Genre)
	}
	if s.Genre2 != "" {
		fmt.Fprintf(&sb, "Second genre: %s\n", s.Genre2)
	}
	if s.Difficulty != "" {
		fmt.Fprintf(&sb, "Difficulty: %s\n", s.Difficulty)
	}
	if s.Duration != "" {
		fmt.Fprintf(&sb, "Duration: %s\n", s.Duration)
	}
	if s.Notes != "" {
		fmt.Fprintf(&sb, "\n%s\n", s.Notes)
	}
	fmt.Fprintf(&sb, "\nAdded: %s\n", s.CreatedAt.Format("2006-01-02"))

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.delete, m.keys.quit})
	return fmt.Sprintf("%s\n%s", sb.String(), helpView)
}

func (m *Model) renderConfirm() string {
	if m.selected == nil {
		m.view = ListView
		return ""
	}

	title := styles.warn.Render(fmt.Sprintf("Delete '%s' by %s?", m.selected.Title, m.selected.Composer))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}
