package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okyar/bookmate/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState
	showHelp   bool

	library  libraryModel
	session  sessionModel
	settings settingsModel

	help        help.Model
	status      string
	statusIsErr bool
}

func NewApp(s *store.Store) App {
	applyTheme(s.Settings().Theme)

	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewLibrary,
		library:    newLibraryModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.library.setSize(a.width, contentHeight)
		a.session.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Forms, overlays and note editing capture all input.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		// The session screen owns the digit keys for answering, so tab
		// switching is only live outside it; esc leaves the session first.
		case a.activeView != viewSession && key.Matches(msg, keys.Tab1):
			a.activeView = viewLibrary
			a.library.refresh()
			return a, nil
		case a.activeView != viewSession && key.Matches(msg, keys.Tab2):
			a.activeView = viewSettings
			return a, nil
		}

	case tickMsg:
		var cmd tea.Cmd
		if a.activeView == viewSession {
			a.session, cmd = a.session.update(msg)
		}
		return a, tea.Batch(tickCmd(), cmd)

	case openSessionMsg:
		a.session = newSessionModel(a.store, msg.id)
		a.session.setSize(a.width, a.height-4)
		a.activeView = viewSession
		return a, nil

	case closeSessionMsg:
		a.activeView = viewLibrary
		a.library.refresh()
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusIsErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Report saved to " + msg.path
		a.statusIsErr = false
		return a, nil

	case shareDoneMsg:
		a.status = "Result copied to clipboard"
		a.statusIsErr = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewLibrary:
		a.library, cmd = a.library.update(msg)
	case viewSession:
		a.session, cmd = a.session.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLibrary:
		return a.library.formActive || a.library.confirming
	case viewSession:
		return a.session.formActive || a.session.noteEditing || a.session.confirming
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewLibrary:
		content = a.library.view()
	case viewSession:
		content = a.session.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range tabNames {
		active := (i == 0 && a.activeView == viewLibrary) ||
			(i == 1 && a.activeView == viewSettings)
		if active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("bookmate")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusIsErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
