package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okyar/bookmate/internal/store"
)

// libraryModel is the folder/session browser. One folder level is shown at a
// time; enter descends into folders or opens sessions, esc ascends.
type libraryModel struct {
	store  *store.Store
	width  int
	height int

	folderID string // "" = root
	items    []*store.Item
	cursor   int

	formActive bool
	form       *huh.Form
	formType   string // "session", "folder", "rename"

	// Form field pointers (survive value copies)
	formTitle *string

	editingID  string
	confirming bool // delete confirmation overlay
}

func newLibraryModel(s *store.Store) libraryModel {
	title := ""
	m := libraryModel{
		store:     s,
		formTitle: &title,
	}
	m.refresh()
	return m
}

func (m *libraryModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh reloads the current folder's children, folders first.
func (m *libraryModel) refresh() {
	children := m.store.ListChildren(m.folderID)
	var folders, sessions []*store.Item
	for _, it := range children {
		if it.Type == store.TypeFolder {
			folders = append(folders, it)
		} else {
			sessions = append(sessions, it)
		}
	}
	m.items = append(folders, sessions...)
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

func (m libraryModel) selected() *store.Item {
	if m.cursor < len(m.items) {
		return m.items[m.cursor]
	}
	return nil
}

func (m libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirming {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if it := m.selected(); it != nil {
			if it.Type == store.TypeFolder {
				m.folderID = it.ID
				m.cursor = 0
				m.refresh()
				return m, nil
			}
			id := it.ID
			return m, func() tea.Msg { return openSessionMsg{id: id} }
		}
	case key.Matches(keyMsg, keys.Back):
		if m.folderID != "" {
			parentID := ""
			if folder := m.store.GetItem(m.folderID); folder != nil {
				parentID = folder.ParentID
			}
			m.folderID = parentID
			m.cursor = 0
			m.refresh()
		}
	case key.Matches(keyMsg, keys.NewSession):
		return m.showCreateForm("session")
	case key.Matches(keyMsg, keys.NewFolder):
		return m.showCreateForm("folder")
	case key.Matches(keyMsg, keys.Rename):
		if it := m.selected(); it != nil {
			return m.showRenameForm(it)
		}
	case key.Matches(keyMsg, keys.Color):
		if it := m.selected(); it != nil {
			next := nextColor(it.Color)
			m.store.UpdateItem(it.ID, func(i *store.Item) {
				i.Color = next
			})
			m.refresh()
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.selected() != nil {
			m.confirming = true
		}
	}
	return m, nil
}

func nextColor(current string) string {
	for i, c := range store.Colors {
		if c == current {
			return store.Colors[(i+1)%len(store.Colors)]
		}
	}
	return store.Colors[0]
}

func (m libraryModel) updateConfirm(msg tea.Msg) (libraryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		if it := m.selected(); it != nil {
			if err := m.store.DeleteItem(it.ID); err != nil {
				return m, func() tea.Msg {
					return statusMsg{text: "Delete failed: " + err.Error(), isError: true}
				}
			}
			m.refresh()
		}
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m libraryModel) showCreateForm(formType string) (libraryModel, tea.Cmd) {
	*m.formTitle = ""
	m.formType = formType

	title := "Session Title"
	if formType == "folder" {
		title = "Folder Name"
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m libraryModel) showRenameForm(it *store.Item) (libraryModel, tea.Cmd) {
	*m.formTitle = it.Title
	m.formType = "rename"
	m.editingID = it.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New Title").Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m libraryModel) updateForm(msg tea.Msg) (libraryModel, tea.Cmd) {
	// Check for escape to cancel form
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
		title := strings.TrimSpace(*m.formTitle)
		switch m.formType {
		case "session":
			if title != "" {
				if _, err := m.store.CreateItem(title, store.TypeSession, m.folderID); err != nil {
					return m, errorStatus(err)
				}
			}
		case "folder":
			if title != "" {
				if _, err := m.store.CreateItem(title, store.TypeFolder, m.folderID); err != nil {
					return m, errorStatus(err)
				}
			}
		case "rename":
			if title != "" {
				m.store.UpdateItem(m.editingID, func(i *store.Item) {
					i.Title = title
				})
			}
		}
		m.refresh()
		return m, nil
	}

	return m, cmd
}

func errorStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: err.Error(), isError: true}
	}
}

func (m libraryModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Session")
		switch m.formType {
		case "folder":
			title = titleStyle.Render("New Folder")
		case "rename":
			title = titleStyle.Render("Rename")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return activePanelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	var rows []string
	rows = append(rows, titleStyle.Render(m.breadcrumbs()))
	rows = append(rows, "")

	if m.confirming {
		if it := m.selected(); it != nil {
			prompt := fmt.Sprintf("Delete %q", it.Title)
			if it.Type == store.TypeFolder {
				prompt += " and everything inside it"
			}
			rows = append(rows, errorStyle.Render(prompt+"? (y/n)"))
			return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
		}
	}

	if len(m.items) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing here. Press n for a session or f for a folder."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	for i, it := range m.items {
		rows = append(rows, m.renderItem(it, i == m.cursor))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: session  f: folder  r: rename  c: color  d: delete  enter: open"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m libraryModel) breadcrumbs() string {
	parts := []string{"Library"}
	for _, it := range m.store.PathTo(m.folderID) {
		parts = append(parts, it.Title)
	}
	return strings.Join(parts, " / ")
}

func (m libraryModel) renderItem(it *store.Item, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	dot := lipgloss.NewStyle().Foreground(itemColor(it.Color)).Render("●")

	var meta string
	if it.Type == store.TypeFolder {
		n := len(m.store.ListChildren(it.ID))
		meta = mutedStyle.Render(fmt.Sprintf("%d items", n))
		return fmt.Sprintf("%s%s %s  %s", cursor, dot, style.Render("▸ "+it.Title), meta)
	}

	meta = mutedStyle.Render(fmt.Sprintf("%d Qs · %s", len(it.Questions), it.LastAccessed.Format("02 Jan")))
	badge := ""
	if it.Graded() {
		badge = " " + badgeStyle.Render("GRADED")
	}
	return fmt.Sprintf("%s%s %s%s  %s", cursor, dot, style.Render(it.Title), badge, meta)
}
