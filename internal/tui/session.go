package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okyar/bookmate/internal/export"
	"github.com/okyar/bookmate/internal/session"
	"github.com/okyar/bookmate/internal/store"
)

// autoAdvanceDelay is how long an answer on the last question has to settle
// before a fresh question is appended.
const autoAdvanceDelay = 350 * time.Millisecond

// sessionModel is the single-session screen: answering while active, grading
// and review once submitted.
type sessionModel struct {
	store  *store.Store
	id     string
	width  int
	height int

	cursor          int
	scroll          int
	filterBookmarks bool

	noteEditing bool
	noteInput   textinput.Model

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formPositive *string
	formNegative *string

	confirming bool // submit confirmation overlay

	// advanceGen invalidates in-flight auto-advance timers: any interaction
	// bumps it, and a timer firing with a stale gen is discarded.
	advanceGen int

	now time.Time
}

func newSessionModel(s *store.Store, id string) sessionModel {
	pos, neg := "", ""

	ti := textinput.New()
	ti.Placeholder = "Note"
	ti.CharLimit = 200

	return sessionModel{
		store:        s,
		id:           id,
		noteInput:    ti,
		formPositive: &pos,
		formNegative: &neg,
		now:          time.Now(),
	}
}

func (m *sessionModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m sessionModel) item() *store.Item {
	return m.store.GetItem(m.id)
}

// visibleQuestions applies the bookmark filter (graded sessions only).
func (m sessionModel) visibleQuestions(it *store.Item) []int {
	if !m.filterBookmarks || !it.Graded() {
		return it.Questions
	}
	var qs []int
	for _, q := range it.Questions {
		if session.Bookmarked(it, q) {
			qs = append(qs, q)
		}
	}
	return qs
}

func (m sessionModel) selectedQuestion(it *store.Item) (int, bool) {
	qs := m.visibleQuestions(it)
	if m.cursor < len(qs) {
		return qs[m.cursor], true
	}
	return 0, false
}

func (m sessionModel) update(msg tea.Msg) (sessionModel, tea.Cmd) {
	it := m.item()
	if it == nil {
		return m, func() tea.Msg { return closeSessionMsg{} }
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, nil

	case autoAdvanceMsg:
		if msg.sessionID != m.id || msg.gen != m.advanceGen || it.Graded() {
			return m, nil
		}
		questions := session.AddQuestion(it)
		m.store.UpdateItem(m.id, func(i *store.Item) {
			i.Questions = questions
		})
		m.cursor = len(questions) - 1
		return m, nil
	}

	if m.noteEditing {
		return m.updateNote(msg, it)
	}
	if m.formActive && m.form != nil {
		return m.updateMarksForm(msg, it)
	}
	if m.confirming {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	qs := m.visibleQuestions(it)

	switch {
	case key.Matches(keyMsg, keys.Back):
		return m, func() tea.Msg { return closeSessionMsg{} }

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(qs)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Bookmark):
		if q, ok := m.selectedQuestion(it); ok {
			bookmarks := session.ToggleBookmark(it, q)
			m.store.UpdateItem(m.id, func(i *store.Item) {
				i.Bookmarks = bookmarks
			})
		}

	case key.Matches(keyMsg, keys.Note):
		if q, ok := m.selectedQuestion(it); ok {
			m.noteEditing = true
			m.noteInput.SetValue(it.Notes[q])
			m.noteInput.Focus()
			return m, textinput.Blink
		}

	case key.Matches(keyMsg, keys.AddQuestion):
		if !it.Graded() {
			m.advanceGen++
			questions := session.AddQuestion(it)
			m.store.UpdateItem(m.id, func(i *store.Item) {
				i.Questions = questions
			})
			m.cursor = len(questions) - 1
		}

	case key.Matches(keyMsg, keys.Submit):
		if !it.Graded() {
			m.confirming = true
		}

	case key.Matches(keyMsg, keys.Grade):
		if q, ok := m.selectedQuestion(it); ok && it.Graded() {
			results := session.CycleGrade(it, q)
			m.store.UpdateItem(m.id, func(i *store.Item) {
				i.Results = results
			})
		}

	case key.Matches(keyMsg, keys.Marks):
		return m.showMarksForm(it)

	case key.Matches(keyMsg, keys.AutoAdvance):
		if !it.Graded() {
			m.advanceGen++
			m.store.UpdateItem(m.id, func(i *store.Item) {
				i.AutoAdvance = !i.AutoAdvance
			})
		}

	case key.Matches(keyMsg, keys.Filter):
		if it.Graded() {
			m.filterBookmarks = !m.filterBookmarks
			m.cursor = 0
			m.scroll = 0
		}

	case key.Matches(keyMsg, keys.Export):
		if it.Graded() {
			return m, m.exportCmd(it)
		}

	case key.Matches(keyMsg, keys.Share):
		if it.Graded() {
			return m, m.shareCmd(it)
		}

	default:
		if choice, ok := answerChoice(keyMsg.String()); ok && !it.Graded() {
			if q, ok := m.selectedQuestion(it); ok {
				answers, advance := session.ToggleAnswer(it, q, choice)
				m.store.UpdateItem(m.id, func(i *store.Item) {
					i.Answers = answers
				})
				m.advanceGen++
				if advance {
					gen := m.advanceGen
					id := m.id
					return m, tea.Tick(autoAdvanceDelay, func(time.Time) tea.Msg {
						return autoAdvanceMsg{sessionID: id, gen: gen}
					})
				}
			}
		}
	}
	return m, nil
}

// answerChoice maps the 1-4 keys to a choice index.
func answerChoice(k string) (int, bool) {
	switch k {
	case "1":
		return 0, true
	case "2":
		return 1, true
	case "3":
		return 2, true
	case "4":
		return 3, true
	}
	return 0, false
}

func (m sessionModel) updateNote(msg tea.Msg, it *store.Item) (sessionModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.noteEditing = false
			m.noteInput.Blur()
			return m, nil
		case "enter":
			m.noteEditing = false
			m.noteInput.Blur()
			if q, ok := m.selectedQuestion(it); ok {
				notes := session.SetNote(it, q, strings.TrimSpace(m.noteInput.Value()))
				m.store.UpdateItem(m.id, func(i *store.Item) {
					i.Notes = notes
				})
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m sessionModel) updateConfirm(msg tea.Msg) (sessionModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		m.advanceGen++
		if err := m.store.SubmitSession(m.id); err != nil {
			return m, errorStatus(err)
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Session submitted — grade your answers with g"}
		}
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m sessionModel) showMarksForm(it *store.Item) (sessionModel, tea.Cmd) {
	*m.formPositive = export.FormatMark(it.PositiveMark)
	*m.formNegative = export.FormatMark(it.NegativeMark)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Marks per correct answer").Value(m.formPositive),
			huh.NewInput().Title("Penalty per wrong answer").Value(m.formNegative),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sessionModel) updateMarksForm(msg tea.Msg, it *store.Item) (sessionModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		pos, neg := it.PositiveMark, it.NegativeMark
		if v, err := strconv.ParseFloat(strings.TrimSpace(*m.formPositive), 64); err == nil {
			pos = v
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(*m.formNegative), 64); err == nil {
			neg = v
		}
		m.store.UpdateItem(m.id, func(i *store.Item) {
			i.PositiveMark = pos
			i.NegativeMark = neg
		})
		return m, nil
	}

	return m, cmd
}

func (m sessionModel) exportCmd(it *store.Item) tea.Cmd {
	id := it.ID
	st := session.ComputeStats(it)
	settings := m.store.Settings()
	s := m.store
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		it := s.GetItem(id)
		if it == nil {
			return statusMsg{text: "Export failed: session is gone", isError: true}
		}
		path := filepath.Join(home, export.ReportFileName(it.Title))
		if err := export.WriteReport(it, st, settings, path); err != nil {
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (m sessionModel) shareCmd(it *store.Item) tea.Cmd {
	text := export.ShareText(it, session.ComputeStats(it))
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: "Clipboard unavailable: " + err.Error(), isError: true}
		}
		return shareDoneMsg{}
	}
}

// --- View ---

func (m sessionModel) view() string {
	it := m.item()
	if it == nil {
		return mutedStyle.Render("Session not found.")
	}

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Marking Scheme"), "", m.form.View(),
		)
		return activePanelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	var sections []string
	sections = append(sections, m.renderHeader(it))

	if it.Graded() {
		sections = append(sections, "", m.renderStats(it))
	}

	sections = append(sections, "", m.renderQuestions(it))

	if m.confirming {
		sections = append(sections, "", errorStyle.Render("Submit for grading? This cannot be undone. (y/n)"))
	} else if m.noteEditing {
		sections = append(sections, "", "Note: "+m.noteInput.View())
	} else {
		sections = append(sections, "", m.renderFooter(it))
	}

	return panelStyle.Width(w).Render(strings.Join(sections, "\n"))
}

func (m sessionModel) renderHeader(it *store.Item) string {
	dot := lipgloss.NewStyle().Foreground(itemColor(it.Color)).Render("●")
	title := titleStyle.Render(it.Title)

	badge := warningStyle.Render("ACTIVE")
	if it.Graded() {
		badge = badgeStyle.Render("GRADED")
	}

	end := m.now
	if it.EndTime != nil {
		end = *it.EndTime
	}
	timer := timerStyle.Render("⏱ " + formatElapsed(end.Sub(it.CreatedAt)))

	return lipgloss.JoinHorizontal(lipgloss.Bottom, dot, " ", title, "  ", badge, "  ", timer)
}

func (m sessionModel) renderStats(it *store.Item) string {
	st := session.ComputeStats(it)

	line := fmt.Sprintf("Score: %s   Correct: %d   Wrong: %d   Accuracy: %d%%",
		export.FormatMark(st.Score), st.Correct, st.Wrong, st.Accuracy)

	unchecked := st.Total - st.Correct - st.Wrong

	chartWidth := m.width - 10
	if chartWidth < 24 {
		chartWidth = 24
	}
	chart := barchart.New(chartWidth, 6)
	chart.PushAll([]barchart.BarData{
		{Label: "Correct", Values: []barchart.BarValue{{Name: "Correct", Value: float64(st.Correct), Style: successStyle}}},
		{Label: "Wrong", Values: []barchart.BarValue{{Name: "Wrong", Value: float64(st.Wrong), Style: errorStyle}}},
		{Label: "Open", Values: []barchart.BarValue{{Name: "Open", Value: float64(unchecked), Style: mutedStyle}}},
	})
	chart.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, scoreStyle.Render(line), "", chart.View())
}

func (m sessionModel) renderQuestions(it *store.Item) string {
	qs := m.visibleQuestions(it)
	if len(qs) == 0 {
		if m.filterBookmarks {
			return mutedStyle.Render("No bookmarked questions. Press tab to show all.")
		}
		return mutedStyle.Render("No questions yet. Press a to add one.")
	}

	labels := session.Labels(m.store.Settings().LabelType)

	// Scrolling window sized to what the stats block and chrome leave over.
	listHeight := m.height - 10
	if it.Graded() {
		listHeight -= 10
	}
	if listHeight < 3 {
		listHeight = 3
	}

	scroll := m.scroll
	if m.cursor < scroll {
		scroll = m.cursor
	}
	if m.cursor >= scroll+listHeight {
		scroll = m.cursor - listHeight + 1
	}

	var rows []string
	for i := scroll; i < len(qs) && i < scroll+listHeight; i++ {
		rows = append(rows, m.renderQuestion(it, qs[i], labels, i == m.cursor))
	}
	if scroll+listHeight < len(qs) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(qs)-scroll-listHeight)))
	}
	return strings.Join(rows, "\n")
}

func (m sessionModel) renderQuestion(it *store.Item, q int, labels []string, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	var choices []string
	answered, hasAnswer := it.Answers[q]
	for i, label := range labels {
		if hasAnswer && i == answered {
			choices = append(choices, highlightStyle.Render("["+label+"]"))
		} else {
			choices = append(choices, mutedStyle.Render(" "+label+" "))
		}
	}

	mark := "  "
	if session.Bookmarked(it, q) {
		mark = warningStyle.Render("★ ")
	}

	grade := ""
	if it.Graded() {
		switch {
		case it.Results[q] == store.ResultCorrect:
			grade = "  " + successStyle.Render("✓ correct")
		case it.Results[q] == store.ResultWrong:
			grade = "  " + errorStyle.Render("✗ wrong")
		case !hasAnswer:
			grade = "  " + mutedStyle.Render("skipped")
		default:
			grade = "  " + mutedStyle.Render("unchecked")
		}
	}

	note := ""
	if n := it.Notes[q]; n != "" {
		note = "  " + mutedStyle.Render("✎ "+n)
	}

	return fmt.Sprintf("%s%s%s  %s%s%s",
		cursor, mark, style.Render(fmt.Sprintf("Q%-3d", q)),
		strings.Join(choices, " "), grade, note)
}

func (m sessionModel) renderFooter(it *store.Item) string {
	if it.Graded() {
		filter := "all"
		if m.filterBookmarks {
			filter = "bookmarks"
		}
		return mutedStyle.Render(fmt.Sprintf(
			"  g: grade  b: bookmark  m: note  tab: %s  e: export  y: share  esc: back", filter))
	}

	st := session.ComputeStats(it)
	pill := highlightStyle.Render(fmt.Sprintf("%d/%d attempted", st.Attempted, st.Total))

	auto := "off"
	if it.AutoAdvance {
		auto = "on"
	}
	return pill + mutedStyle.Render(fmt.Sprintf(
		"   1-4: answer  b: bookmark  m: note  a: add  s: submit  z: auto-advance (%s)", auto))
}
