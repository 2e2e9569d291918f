package session

import (
	"math"

	"github.com/okyar/bookmate/internal/store"
)

// Stats is everything the grading header, report and share text derive from
// a session.
type Stats struct {
	Correct   int
	Wrong     int
	Score     float64
	Accuracy  int // rounded percentage of graded attempts, not of total
	Attempted int
	Total     int
}

// ComputeStats derives scoring from a session. Accuracy is measured against
// graded attempts only — skipped and unchecked questions do not dilute it.
func ComputeStats(it *store.Item) Stats {
	st := Stats{
		Attempted: len(it.Answers),
		Total:     len(it.Questions),
	}
	for _, r := range it.Results {
		switch r {
		case store.ResultCorrect:
			st.Correct++
		case store.ResultWrong:
			st.Wrong++
		}
	}

	pos, neg := it.PositiveMark, it.NegativeMark
	if pos == 0 {
		pos = 4
	}
	if neg == 0 {
		neg = 1
	}
	st.Score = float64(st.Correct)*pos - float64(st.Wrong)*neg

	if graded := st.Correct + st.Wrong; graded > 0 {
		st.Accuracy = int(math.Round(float64(st.Correct) / float64(graded) * 100))
	}
	return st
}

// Labels returns the four choice labels for the configured label type.
func Labels(t store.LabelType) []string {
	if t == store.Labels1234 {
		return []string{"1", "2", "3", "4"}
	}
	return []string{"A", "B", "C", "D"}
}
