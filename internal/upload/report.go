package upload

import (
	"errors"
	"fmt"
	"strings"
)

// Summary is the rendered outcome of a batch.
type Summary struct {
	Text      string
	OK        bool
	Succeeded int
	Failed    int
}

// Report renders one line per file, in submission order, and the overall
// outcome.
func Report(results BatchResult) Summary {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Line())
	}
	succeeded, failed := results.Counts()
	return Summary{
		Text:      strings.Join(lines, "\n"),
		OK:        results.Succeeded(),
		Succeeded: succeeded,
		Failed:    failed,
	}
}

// Line renders a single result.
func (r Result) Line() string {
	if r.Success {
		var b strings.Builder
		b.WriteString("✅ ")
		b.WriteString(r.FileName)
		b.WriteString(" uploaded")
		if r.PhotoID != "" {
			fmt.Fprintf(&b, " (photo id %s)", r.PhotoID)
		}
		if r.Message != "" {
			b.WriteString(": ")
			b.WriteString(r.Message)
		}
		return b.String()
	}

	line := fmt.Sprintf("❌ %s failed: %s", r.FileName, r.Message)
	if r.StatusCode != 0 {
		line += fmt.Sprintf(" (status %d)", r.StatusCode)
	}
	return line
}

// RejectionLine renders a batch-level error, usually a *ValidationError.
func RejectionLine(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "❌ " + vErr.Reason
	}
	return "❌ " + err.Error()
}

// Totals renders the succeeded/failed counts.
func (s Summary) Totals() string {
	return fmt.Sprintf("%d succeeded, %d failed", s.Succeeded, s.Failed)
}
