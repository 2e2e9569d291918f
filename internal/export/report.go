// Package export renders graded sessions into shareable text: the plain-text
// report file and the short share summary. Pure string construction plus one
// file-writing convenience; the clipboard/share hand-off lives with the UI.
package export

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okyar/bookmate/internal/session"
	"github.com/okyar/bookmate/internal/store"
)

var whitespace = regexp.MustCompile(`\s+`)

// FormatReport renders the session as a plain-text report. Output is
// deterministic for identical input — now is the only timestamp and it is a
// parameter, not a clock read.
func FormatReport(it *store.Item, st session.Stats, settings store.Settings, now time.Time) string {
	labels := session.Labels(settings.LabelType)

	var b strings.Builder
	b.WriteString("BOOKMATE REPORT\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "Title: %s\n", it.Title)
	fmt.Fprintf(&b, "Date: %s\n", now.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Score: %s (Accuracy: %d%%)\n\n", FormatMark(st.Score), st.Accuracy)

	for _, q := range it.Questions {
		label := "-"
		if idx, ok := it.Answers[q]; ok && idx >= 0 && idx < len(labels) {
			label = labels[idx]
		}

		status := "[UNCHECKED]"
		switch it.Results[q] {
		case store.ResultCorrect:
			status = "[CORRECT]"
		case store.ResultWrong:
			status = "[WRONG]"
		}

		mark := ""
		if session.Bookmarked(it, q) {
			mark = " [BOOKMARKED]"
		}

		note := ""
		if n := it.Notes[q]; n != "" {
			note = " | Note: " + n
		}

		fmt.Fprintf(&b, "Q%d%s: %s %s%s\n", q, mark, label, status, note)
	}
	return b.String()
}

// ReportFileName derives the report file name from the session title:
// whitespace collapsed to underscores, suffixed _Report.txt.
func ReportFileName(title string) string {
	return whitespace.ReplaceAllString(title, "_") + "_Report.txt"
}

// WriteReport renders the report and writes it to path.
func WriteReport(it *store.Item, st session.Stats, settings store.Settings, path string) error {
	content := FormatReport(it, st, settings, time.Now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ShareText is the short result summary handed to the clipboard.
func ShareText(it *store.Item, st session.Stats) string {
	return fmt.Sprintf("I scored %s marks in %q with BookMate! (%d%% Accuracy).",
		FormatMark(st.Score), it.Title, st.Accuracy)
}

// FormatMark prints a mark value without trailing zeros (10, not 10.00).
func FormatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
