package store

import "time"

// ItemType discriminates the two node kinds in the library tree.
type ItemType string

const (
	TypeFolder  ItemType = "folder"
	TypeSession ItemType = "session"
)

// Status is the session lifecycle state. Folders carry it but ignore it.
type Status string

const (
	StatusActive Status = "active"
	StatusGraded Status = "graded"
)

// Result is a per-question grading outcome. Absence from the results map
// means the question is unchecked.
type Result string

const (
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// LabelType selects how the four answer choices are labelled.
type LabelType string

const (
	LabelsABCD LabelType = "ABCD"
	Labels1234 LabelType = "1234"
)

// Colors is the fixed tag palette for items. Visual grouping only.
var Colors = []string{"blue", "red", "green", "purple", "orange", "gray"}

// Item is a node in the library tree: a folder or a quiz session. The tree
// is kept flat — every item points at its parent by id, "" meaning root.
// JSON tags define the snapshot serialization format; changing them is a
// breaking schema change (there is no migration layer for the records).
type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Type      ItemType `json:"type"`
	ParentID  string   `json:"parentId,omitempty"`
	Color     string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`

	// Session fields. CreatedAt doubles as the session start time.
	Status       Status         `json:"status"`
	Questions    []int          `json:"questions"`
	Answers      map[int]int    `json:"answers"`
	Results      map[int]Result `json:"results"`
	Bookmarks    []int          `json:"bookmarks"`
	Notes        map[int]string `json:"notes"`
	PositiveMark float64        `json:"positiveMark"`
	NegativeMark float64        `json:"negativeMark"`
	AutoAdvance  bool           `json:"sessionAutoAdvance"`

	LastAccessed time.Time  `json:"lastAccessed"`
	EndTime      *time.Time `json:"endTime,omitempty"`
}

// Graded reports whether the session has been submitted for grading.
func (it *Item) Graded() bool { return it.Status == StatusGraded }

// Settings is the app-wide configuration singleton.
type Settings struct {
	Theme           Theme     `json:"theme"`
	LabelType       LabelType `json:"labelType"`
	DefaultPositive float64   `json:"defaultPositive"`
	DefaultNegative float64   `json:"defaultNegative"`
	AutoAdvance     bool      `json:"autoAdvance"`
}

// DefaultSettings are the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		Theme:           ThemeSystem,
		LabelType:       LabelsABCD,
		DefaultPositive: 4,
		DefaultNegative: 1,
		AutoAdvance:     true,
	}
}
