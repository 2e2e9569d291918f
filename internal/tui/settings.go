package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okyar/bookmate/internal/export"
	"github.com/okyar/bookmate/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme       *string
	labelType   *string
	positive    *string
	negative    *string
	autoAdvance *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	th, lt, pos, neg := "", "", "", ""
	auto := false
	return settingsModel{
		store:       s,
		theme:       &th,
		labelType:   &lt,
		positive:    &pos,
		negative:    &neg,
		autoAdvance: &auto,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.store.Settings()
	*s.theme = string(cur.Theme)
	*s.labelType = string(cur.LabelType)
	*s.positive = export.FormatMark(cur.DefaultPositive)
	*s.negative = export.FormatMark(cur.DefaultNegative)
	*s.autoAdvance = cur.AutoAdvance

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("System", string(store.ThemeSystem)),
					huh.NewOption("Dark", string(store.ThemeDark)),
					huh.NewOption("Light", string(store.ThemeLight)),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Answer labels").
				Options(
					huh.NewOption("A B C D", string(store.LabelsABCD)),
					huh.NewOption("1 2 3 4", string(store.Labels1234)),
				).Value(s.labelType),
			huh.NewInput().Title("Default marks per correct").Value(s.positive),
			huh.NewInput().Title("Default penalty per wrong").Value(s.negative),
			huh.NewConfirm().Title("Auto-advance on last answer").Value(s.autoAdvance),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	cur := s.store.Settings()
	pos, neg := cur.DefaultPositive, cur.DefaultNegative
	if v, err := strconv.ParseFloat(strings.TrimSpace(*s.positive), 64); err == nil {
		pos = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(*s.negative), 64); err == nil {
		neg = v
	}

	theme := store.Theme(*s.theme)
	s.store.UpdateSettings(func(set *store.Settings) {
		set.Theme = theme
		set.LabelType = store.LabelType(*s.labelType)
		set.DefaultPositive = pos
		set.DefaultNegative = neg
		set.AutoAdvance = *s.autoAdvance
	})
	applyTheme(theme)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	cur := s.store.Settings()
	auto := "off"
	if cur.AutoAdvance {
		auto = "on"
	}
	labels := "A B C D"
	if cur.LabelType == store.Labels1234 {
		labels = "1 2 3 4"
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		settingRow("Theme", string(cur.Theme)),
		settingRow("Answer labels", labels),
		settingRow("Default marks per correct", export.FormatMark(cur.DefaultPositive)),
		settingRow("Default penalty per wrong", export.FormatMark(cur.DefaultNegative)),
		settingRow("Auto-advance", auto),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(28).Render(label),
		highlightStyle.Render(value))
}
