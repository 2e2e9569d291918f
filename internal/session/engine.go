// Package session holds the pure quiz-session logic: answer and bookmark
// toggling, grading, notes and score derivation. Nothing here mutates the
// session item it is given or touches storage — every operation returns the
// new field value and the caller persists it through store.UpdateItem.
package session

import "github.com/okyar/bookmate/internal/store"

// ToggleAnswer selects choice for question q, or clears it when choice is
// already selected. Graded sessions are read-only, so the current answers
// come back untouched. The bool signals that the caller should auto-advance:
// the last question was just answered (not cleared) and the session has
// auto-advance enabled.
func ToggleAnswer(it *store.Item, q, choice int) (map[int]int, bool) {
	if it.Graded() {
		return it.Answers, false
	}

	current, had := it.Answers[q]
	answers := make(map[int]int, len(it.Answers)+1)
	for k, v := range it.Answers {
		answers[k] = v
	}
	if had && current == choice {
		delete(answers, q)
		return answers, false
	}
	answers[q] = choice

	last := 0
	if n := len(it.Questions); n > 0 {
		last = it.Questions[n-1]
	}
	return answers, it.AutoAdvance && q == last
}

// ToggleBookmark flags question q for review, or unflags it.
func ToggleBookmark(it *store.Item, q int) []int {
	bookmarks := make([]int, 0, len(it.Bookmarks)+1)
	found := false
	for _, b := range it.Bookmarks {
		if b == q {
			found = true
			continue
		}
		bookmarks = append(bookmarks, b)
	}
	if !found {
		bookmarks = append(bookmarks, q)
	}
	return bookmarks
}

// Bookmarked reports whether question q is bookmarked.
func Bookmarked(it *store.Item, q int) bool {
	for _, b := range it.Bookmarks {
		if b == q {
			return true
		}
	}
	return false
}

// AddQuestion appends the next question number. Questions are always the
// contiguous run 1..n, so the next number is simply last+1.
func AddQuestion(it *store.Item) []int {
	last := 0
	if n := len(it.Questions); n > 0 {
		last = it.Questions[n-1]
	}
	questions := make([]int, len(it.Questions), len(it.Questions)+1)
	copy(questions, it.Questions)
	return append(questions, last+1)
}

// CycleGrade advances question q one step through the grading cycle:
// unchecked → correct → wrong → unchecked. Only meaningful once the session
// is graded; before that the current results come back untouched.
func CycleGrade(it *store.Item, q int) map[int]store.Result {
	if !it.Graded() {
		return it.Results
	}

	results := make(map[int]store.Result, len(it.Results)+1)
	for k, v := range it.Results {
		results[k] = v
	}
	switch results[q] {
	case store.ResultCorrect:
		results[q] = store.ResultWrong
	case store.ResultWrong:
		delete(results, q)
	default:
		results[q] = store.ResultCorrect
	}
	return results
}

// SetNote overwrites the note on question q. An empty string is stored
// explicitly rather than deleting the key.
func SetNote(it *store.Item, q int, text string) map[int]string {
	notes := make(map[int]string, len(it.Notes)+1)
	for k, v := range it.Notes {
		notes[k] = v
	}
	notes[q] = text
	return notes
}
