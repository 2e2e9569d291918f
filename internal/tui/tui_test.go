package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okyar/bookmate/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func keyPress(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{time.Second, "0:01"},
		{time.Minute, "1:00"},
		{90 * time.Second, "1:30"},
		{time.Hour, "1:00:00"},
		{time.Hour + 5*time.Minute + 9*time.Second, "1:05:09"},
		{-time.Second, "0:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatElapsed(tt.d)
		if got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestAnswerChoice(t *testing.T) {
	tests := []struct {
		key string
		idx int
		ok  bool
	}{
		{"1", 0, true},
		{"2", 1, true},
		{"3", 2, true},
		{"4", 3, true},
		{"5", 0, false},
		{"a", 0, false},
	}
	for _, tt := range tests {
		idx, ok := answerChoice(tt.key)
		if idx != tt.idx || ok != tt.ok {
			t.Errorf("answerChoice(%q) = %d,%v, want %d,%v", tt.key, idx, ok, tt.idx, tt.ok)
		}
	}
}

func TestNextColor(t *testing.T) {
	if got := nextColor("blue"); got != "red" {
		t.Fatalf("expected red after blue, got %q", got)
	}
	last := store.Colors[len(store.Colors)-1]
	if got := nextColor(last); got != store.Colors[0] {
		t.Fatalf("expected wrap to %q, got %q", store.Colors[0], got)
	}
	if got := nextColor("unknown"); got != store.Colors[0] {
		t.Fatalf("expected fallback to %q, got %q", store.Colors[0], got)
	}
}

func TestItemColorFallback(t *testing.T) {
	if itemColor("unknown") != itemColors["blue"] {
		t.Fatal("unknown color should fall back to blue")
	}
	for _, name := range store.Colors {
		if _, ok := itemColors[name]; !ok {
			t.Fatalf("palette missing color %q", name)
		}
	}
}

// ============================================================
// View state
// ============================================================

func TestTabNames(t *testing.T) {
	if len(tabNames) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(tabNames))
	}
	if tabNames[0] != "Library" || tabNames[1] != "Settings" {
		t.Fatalf("unexpected tab names: %v", tabNames)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewLibrary {
		t.Fatal("default view should be the library")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	if got := app.View(); got != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", got)
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	app := NewApp(s)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)
	model, _ = app.Update(openSessionMsg{id: sess.ID})
	app = model.(App)

	// All views render without panic
	for _, v := range []viewState{viewLibrary, viewSession, viewSettings} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppOpenAndCloseSession(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	app := NewApp(s)
	model, _ := app.Update(openSessionMsg{id: sess.ID})
	app = model.(App)
	if app.activeView != viewSession {
		t.Fatal("expected session view after open")
	}
	if app.session.id != sess.ID {
		t.Fatalf("session model bound to %q, want %q", app.session.id, sess.ID)
	}

	model, _ = app.Update(closeSessionMsg{})
	app = model.(App)
	if app.activeView != viewLibrary {
		t.Fatal("expected library view after close")
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "saved"})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "saved") {
		t.Fatal("footer should contain the status message")
	}
}

func TestAppTabSwitch(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	model, _ := app.Update(keyPress("2"))
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatal("expected settings view after 2")
	}

	model, _ = app.Update(keyPress("1"))
	app = model.(App)
	if app.activeView != viewLibrary {
		t.Fatal("expected library view after 1")
	}
}

func TestAppSessionOwnsDigitKeys(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")
	s.UpdateItem(sess.ID, func(i *store.Item) {
		i.AutoAdvance = false
	})

	app := NewApp(s)
	model, _ := app.Update(openSessionMsg{id: sess.ID})
	app = model.(App)

	// Inside a session the digits answer; they must not switch tabs.
	for want, k := range []string{"1", "2", "3", "4"} {
		model, _ = app.Update(keyPress(k))
		app = model.(App)
		if app.activeView != viewSession {
			t.Fatalf("key %q navigated away from the session", k)
		}
		if got := s.GetItem(sess.ID).Answers[1]; got != want {
			t.Fatalf("key %q: expected choice %d on Q1, got %d", k, want, got)
		}
	}

	// Leaving the session hands the digits back to tab switching.
	model, _ = app.Update(closeSessionMsg{})
	app = model.(App)
	model, _ = app.Update(keyPress("2"))
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatal("expected settings view after leaving the session")
	}
}

// ============================================================
// Library model
// ============================================================

func TestLibraryListsFoldersFirst(t *testing.T) {
	s := newTestStore(t)
	s.CreateItem("zz session", store.TypeSession, "")
	s.CreateItem("aa folder", store.TypeFolder, "")

	m := newLibraryModel(s)
	if len(m.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.items))
	}
	if m.items[0].Type != store.TypeFolder {
		t.Fatal("folders should sort before sessions")
	}
}

func TestLibraryDescendAndAscend(t *testing.T) {
	s := newTestStore(t)
	folder, _ := s.CreateItem("folder", store.TypeFolder, "")
	s.CreateItem("inner", store.TypeSession, folder.ID)

	m := newLibraryModel(s)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.folderID != folder.ID {
		t.Fatalf("expected to descend into %q, got %q", folder.ID, m.folderID)
	}
	if len(m.items) != 1 || m.items[0].Title != "inner" {
		t.Fatalf("unexpected folder contents: %+v", m.items)
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.folderID != "" {
		t.Fatalf("expected root after esc, got %q", m.folderID)
	}
}

func TestLibraryOpensSession(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newLibraryModel(s)
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	msg, ok := cmd().(openSessionMsg)
	if !ok || msg.id != sess.ID {
		t.Fatalf("expected openSessionMsg for %q, got %#v", sess.ID, msg)
	}
	_ = m
}

func TestLibraryDeleteNeedsConfirmation(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newLibraryModel(s)
	m, _ = m.update(keyPress("d"))
	if !m.confirming {
		t.Fatal("expected confirmation overlay")
	}
	if s.GetItem(sess.ID) == nil {
		t.Fatal("nothing should be deleted before confirming")
	}

	m, _ = m.update(keyPress("n"))
	if m.confirming {
		t.Fatal("n should dismiss the overlay")
	}
	if s.GetItem(sess.ID) == nil {
		t.Fatal("declined delete must keep the item")
	}

	m, _ = m.update(keyPress("d"))
	m, _ = m.update(keyPress("y"))
	if s.GetItem(sess.ID) != nil {
		t.Fatal("confirmed delete should remove the item")
	}
}

func TestLibraryCycleColor(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newLibraryModel(s)
	m, _ = m.update(keyPress("c"))
	if got := s.GetItem(sess.ID).Color; got != store.Colors[1] {
		t.Fatalf("expected color %q, got %q", store.Colors[1], got)
	}
	_ = m
}

func TestLibraryBreadcrumbs(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateItem("Physics", store.TypeFolder, "")
	b, _ := s.CreateItem("Mocks", store.TypeFolder, a.ID)

	m := newLibraryModel(s)
	m.folderID = b.ID
	if got := m.breadcrumbs(); got != "Library / Physics / Mocks" {
		t.Fatalf("unexpected breadcrumbs: %q", got)
	}
}

// ============================================================
// Session model
// ============================================================

func TestSessionAnswerKeys(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")
	s.UpdateItem(sess.ID, func(i *store.Item) {
		i.Questions = []int{1, 2, 3}
		i.AutoAdvance = false
	})

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("3"))
	if got := s.GetItem(sess.ID).Answers[1]; got != 2 {
		t.Fatalf("expected choice index 2 on Q1, got %d", got)
	}

	// Same key again clears the answer.
	m, _ = m.update(keyPress("3"))
	if _, ok := s.GetItem(sess.ID).Answers[1]; ok {
		t.Fatal("expected answer cleared")
	}
	_ = m
}

func TestSessionAutoAdvanceSchedulesOnLastQuestion(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, cmd := m.update(keyPress("1"))
	if cmd == nil {
		t.Fatal("answering the last question should schedule an advance")
	}
	gen := m.advanceGen

	m, _ = m.update(autoAdvanceMsg{sessionID: sess.ID, gen: gen})
	if got := len(s.GetItem(sess.ID).Questions); got != 2 {
		t.Fatalf("expected 2 questions after advance, got %d", got)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the new question, got %d", m.cursor)
	}
}

func TestSessionAutoAdvanceStaleGenIgnored(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("1"))
	stale := m.advanceGen

	// Clearing the answer bumps the generation; the pending timer is dead.
	m, _ = m.update(keyPress("1"))

	m, _ = m.update(autoAdvanceMsg{sessionID: sess.ID, gen: stale})
	if got := len(s.GetItem(sess.ID).Questions); got != 1 {
		t.Fatalf("stale advance must not add a question, got %d", got)
	}
}

func TestSessionSubmitNeedsConfirmation(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("s"))
	if !m.confirming {
		t.Fatal("expected submit confirmation")
	}
	m, _ = m.update(keyPress("n"))
	if s.GetItem(sess.ID).Graded() {
		t.Fatal("declined submit must keep the session active")
	}

	m, _ = m.update(keyPress("s"))
	m, _ = m.update(keyPress("y"))
	if !s.GetItem(sess.ID).Graded() {
		t.Fatal("confirmed submit should grade the session")
	}
}

func TestSessionGradeCycleKey(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")
	s.SubmitSession(sess.ID)

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("g"))
	if got := s.GetItem(sess.ID).Results[1]; got != store.ResultCorrect {
		t.Fatalf("expected correct after one cycle, got %q", got)
	}
	_ = m
}

func TestSessionBookmarkFilter(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")
	s.UpdateItem(sess.ID, func(i *store.Item) {
		i.Questions = []int{1, 2, 3}
		i.Bookmarks = []int{2}
	})
	s.SubmitSession(sess.ID)

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.filterBookmarks {
		t.Fatal("expected bookmark filter on")
	}

	qs := m.visibleQuestions(s.GetItem(sess.ID))
	if len(qs) != 1 || qs[0] != 2 {
		t.Fatalf("expected only Q2, got %v", qs)
	}
}

func TestSessionFilterRequiresGraded(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if m.filterBookmarks {
		t.Fatal("active sessions have no bookmark filter")
	}
}

func TestSessionNoteEditing(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("m"))
	if !m.noteEditing {
		t.Fatal("expected note editor open")
	}

	m.noteInput.SetValue("revisit chapter 4")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.noteEditing {
		t.Fatal("enter should close the editor")
	}
	if got := s.GetItem(sess.ID).Notes[1]; got != "revisit chapter 4" {
		t.Fatalf("unexpected note: %q", got)
	}
}

func TestSessionAddQuestionKey(t *testing.T) {
	s := newTestStore(t)
	sess, _ := s.CreateItem("quiz", store.TypeSession, "")

	m := newSessionModel(s, sess.ID)
	m, _ = m.update(keyPress("a"))
	if got := s.GetItem(sess.ID).Questions; len(got) != 2 || got[1] != 2 {
		t.Fatalf("expected questions [1 2], got %v", got)
	}

	// Graded sessions are frozen.
	s.SubmitSession(sess.ID)
	m, _ = m.update(keyPress("a"))
	if got := len(s.GetItem(sess.ID).Questions); got != 2 {
		t.Fatalf("graded session grew to %d questions", got)
	}
}

func TestSessionMissingItemCloses(t *testing.T) {
	s := newTestStore(t)
	m := newSessionModel(s, "gone")
	_, cmd := m.update(keyPress("1"))
	if cmd == nil {
		t.Fatal("expected close command for missing session")
	}
	if _, ok := cmd().(closeSessionMsg); !ok {
		t.Fatal("expected closeSessionMsg")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	for _, theme := range []store.Theme{store.ThemeDark, store.ThemeLight, store.ThemeSystem} {
		applyTheme(theme)
		styles := []struct {
			name string
			fn   func() string
		}{
			{"activeTab", func() string { return activeTabStyle.Render("test") }},
			{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
			{"panel", func() string { return panelStyle.Render("test") }},
			{"title", func() string { return titleStyle.Render("test") }},
			{"muted", func() string { return mutedStyle.Render("test") }},
			{"success", func() string { return successStyle.Render("test") }},
			{"warning", func() string { return warningStyle.Render("test") }},
			{"error", func() string { return errorStyle.Render("test") }},
			{"highlight", func() string { return highlightStyle.Render("test") }},
			{"badge", func() string { return badgeStyle.Render("test") }},
			{"score", func() string { return scoreStyle.Render("test") }},
			{"timer", func() string { return timerStyle.Render("test") }},
		}
		for _, s := range styles {
			if s.fn() == "" {
				t.Fatalf("style %q rendered empty under theme %q", s.name, theme)
			}
		}
	}
	applyTheme(store.ThemeSystem)
}
