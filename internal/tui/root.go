package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/judahn02/Professional-Development/internal/mirror"
	"github.com/judahn02/Professional-Development/internal/models"
)

// ViewMode represents the current view.
type ViewMode int

const (
	ViewModeList ViewMode = iota
	ViewModeSearch
	ViewModeForm
)

// Messages
type recordsLoadedMsg struct {
	records []models.Session
}

type recordSavedMsg struct {
	record models.Session
}

type requestFailedMsg struct {
	err error
}

// Form field order matches the write payload.
var formLabels = []string{
	"Date (M/D/YYYY)",
	"Title",
	"Length (minutes)",
	"Session type",
	"CEU weight",
	"CEU considerations",
	"Qualify for CEUs",
	"Event type",
	"Presenters",
}

// Model is the root bubbletea model: a sessions table with sort/search
// plus a create/edit form. All list state lives in mirror.State; the
// model never mutates it in place.
type Model struct {
	client *mirror.Client
	keys   KeyMap

	state  mirror.State
	mode   ViewMode
	cursor int

	search textinput.Model

	form      []textinput.Model
	formIndex int
	editID    *int64

	// inFlight disables the submit control until the active request
	// resolves. A second submit before that would race; this is the
	// sole mitigation.
	inFlight bool
	status   string
	statErr  bool

	width  int
	height int
}

// NewModel creates the root model.
func NewModel(client *mirror.Client) Model {
	search := textinput.New()
	search.Placeholder = "search date, title, type, presenters..."
	search.CharLimit = 80

	return Model{
		client: client,
		keys:   DefaultKeyMap(),
		state:  mirror.NewState(nil),
		search: search,
		status: "loading sessions...",
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.client.List(context.Background())
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m Model) saveCmd(editID *int64, req models.WriteRequest) tea.Cmd {
	return func() tea.Msg {
		var (
			rec models.Session
			err error
		)
		if editID != nil {
			rec, err = m.client.Update(context.Background(), *editID, req)
		} else {
			rec, err = m.client.Create(context.Background(), req)
		}
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return recordSavedMsg{record: rec}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recordsLoadedMsg:
		m.state = m.state.WithRecords(msg.records)
		m.clampCursor()
		m.status = fmt.Sprintf("%d sessions loaded", len(m.state.All))
		m.statErr = false
		return m, nil

	case recordSavedMsg:
		// Fold the canonical server record straight back into the
		// mirror so both sides render the same shape.
		m.state = m.state.Upsert(msg.record)
		m.inFlight = false
		m.mode = ViewModeList
		m.status = "saved " + msg.record.Title
		m.statErr = false
		m.clampCursor()
		return m, nil

	case requestFailedMsg:
		m.inFlight = false
		m.status = msg.err.Error()
		m.statErr = true
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ViewModeSearch:
			return m.updateSearch(msg)
		case ViewModeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.View)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing..."
		m.statErr = false
		return m, m.fetchCmd()
	case key.Matches(msg, m.keys.Search):
		m.mode = ViewModeSearch
		m.search.SetValue(m.state.Query)
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.New):
		m.openForm(nil)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(m.state.View) {
			rec := m.state.View[m.cursor]
			m.openForm(&rec)
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.SortDate):
		m.state = m.state.WithSort(mirror.SortDate)
	case key.Matches(msg, m.keys.SortTitle):
		m.state = m.state.WithSort(mirror.SortTitle)
	case key.Matches(msg, m.keys.SortSType):
		m.state = m.state.WithSort(mirror.SortSType)
	case key.Matches(msg, m.keys.SortLength):
		m.state = m.state.WithSort(mirror.SortLength)
	case key.Matches(msg, m.keys.SortEventType):
		m.state = m.state.WithSort(mirror.SortEventType)
	case key.Matches(msg, m.keys.SortPresenters):
		m.state = m.state.WithSort(mirror.SortPresenters)
	}
	m.clampCursor()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ViewModeList
		m.search.Blur()
		m.state = m.state.WithQuery("")
		m.clampCursor()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.mode = ViewModeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state = m.state.WithQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if !m.inFlight {
			m.mode = ViewModeList
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.inFlight {
			return m, nil
		}
		req := m.formRequest()
		m.inFlight = true
		m.status = "saving..."
		m.statErr = false
		return m, m.saveCmd(m.editID, req)
	case key.Matches(msg, m.keys.Next):
		m.focusField(m.formIndex + 1)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Prev):
		m.focusField(m.formIndex - 1)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.form[m.formIndex], cmd = m.form[m.formIndex].Update(msg)
	return m, cmd
}

// openForm builds the input fields, prefilled when editing.
func (m *Model) openForm(rec *models.Session) {
	values := make([]string, len(formLabels))
	m.editID = nil
	if rec != nil {
		m.editID = rec.ID
		values = []string{
			rec.Date,
			rec.Title,
			strconv.Itoa(rec.Length),
			rec.SType,
			rec.CEUWeight,
			rec.CEUConsiderations,
			rec.QualifyForCEUs,
			rec.EventType,
			rec.Presenters,
		}
	}

	m.form = make([]textinput.Model, len(formLabels))
	for i := range formLabels {
		in := textinput.New()
		in.CharLimit = 200
		in.SetValue(values[i])
		m.form[i] = in
	}
	m.formIndex = 0
	m.form[0].Focus()
	m.mode = ViewModeForm
}

func (m *Model) focusField(idx int) {
	if idx < 0 {
		idx = len(m.form) - 1
	}
	if idx >= len(m.form) {
		idx = 0
	}
	m.form[m.formIndex].Blur()
	m.formIndex = idx
	m.form[m.formIndex].Focus()
}

func (m Model) formRequest() models.WriteRequest {
	length, _ := strconv.Atoi(strings.TrimSpace(m.form[2].Value()))
	return models.WriteRequest{
		Date:              m.form[0].Value(),
		Title:             m.form[1].Value(),
		Length:            length,
		SType:             m.form[3].Value(),
		CEUWeight:         m.form[4].Value(),
		CEUConsiderations: m.form[5].Value(),
		QualifyForCEUs:    m.form[6].Value(),
		EventType:         m.form[7].Value(),
		Presenters:        m.form[8].Value(),
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.View) {
		m.cursor = len(m.state.View) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Professional Development — Sessions"))
	b.WriteString("\n\n")

	if m.mode == ViewModeForm {
		b.WriteString(m.viewForm())
	} else {
		if m.mode == ViewModeSearch {
			b.WriteString(" " + m.search.View() + "\n\n")
		} else if m.state.Query != "" {
			b.WriteString(HelpStyle.Render("filter: "+m.state.Query) + "\n\n")
		}
		b.WriteString(m.viewTable())
	}

	b.WriteString("\n")
	if m.statErr {
		b.WriteString(ErrorStyle.Render(m.status))
	} else {
		b.WriteString(StatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewTable() string {
	headers := []struct {
		label string
		key   mirror.SortKey
		width int
	}{
		{"Date", mirror.SortDate, 10},
		{"Title", mirror.SortTitle, 32},
		{"Type", mirror.SortSType, 14},
		{"Len", mirror.SortLength, 5},
		{"Event", mirror.SortEventType, 14},
		{"Presenters", mirror.SortPresenters, 24},
	}

	var b strings.Builder
	var cells []string
	for _, h := range headers {
		label := h.label
		if m.state.Sort.Key == h.key {
			if m.state.Sort.Desc {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		cells = append(cells, pad(label, h.width))
	}
	b.WriteString(" " + ColumnStyle.Render(strings.Join(cells, " ")) + "\n")

	if len(m.state.View) == 0 {
		b.WriteString(HelpStyle.Render("no sessions found") + "\n")
		return b.String()
	}

	for i, rec := range m.state.View {
		row := strings.Join([]string{
			pad(rec.Date, 10),
			pad(rec.Title, 32),
			pad(rec.SType, 14),
			pad(strconv.Itoa(rec.Length), 5),
			pad(rec.EventType, 14),
			pad(rec.Presenters, 24),
		}, " ")
		if i == m.cursor {
			b.WriteString(" " + SelectedRowStyle.Render(row) + "\n")
		} else {
			b.WriteString(" " + RowStyle.Render(row) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewForm() string {
	title := "New session"
	if m.editID != nil {
		title = fmt.Sprintf("Edit session %d", *m.editID)
	}

	var b strings.Builder
	b.WriteString(" " + ColumnStyle.Render(title) + "\n")
	for i, label := range formLabels {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			FormLabelStyle.Render(" "+label), m.form[i].View()))
		b.WriteString("\n")
	}
	return FormBoxStyle.Render(b.String())
}

func (m Model) viewHelp() string {
	switch m.mode {
	case ViewModeForm:
		if m.inFlight {
			return HelpStyle.Render("saving — submit disabled until the request resolves")
		}
		return HelpStyle.Render("tab/shift+tab fields · ctrl+s save · esc cancel")
	case ViewModeSearch:
		return HelpStyle.Render("enter apply · esc clear")
	default:
		return HelpStyle.Render("↑/↓ move · d/t/y/l/v/p sort · / search · n new · e edit · r refresh · q quit")
	}
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
