package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdns-tui/pdns-tui/internal/catalog"
)

// maxContentWidth caps the record content column so long TXT payloads do
// not push the remaining columns off screen.
const maxContentWidth = 50

// truncate shortens s to at most max characters, marking the cut with an
// ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// formatContents renders the values of one record set as a single cell.
func formatContents(contents []string) string {
	return truncate(strings.Join(contents, ", "), maxContentWidth)
}

// splitContents turns the text of the record content area into one value
// per non-empty line.
func splitContents(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// formatSerial renders a zone serial, using a dash for zones that have
// not reported one.
func formatSerial(serial uint32) string {
	if serial == 0 {
		return "-"
	}
	return strconv.FormatUint(uint64(serial), 10)
}

// zoneCountText summarizes a zone listing for the status line.
func zoneCountText(count int, errs []catalog.ServerError) string {
	text := fmt.Sprintf("%d zones", count)
	if count == 1 {
		text = "1 zone"
	}
	if len(errs) == 0 {
		return text
	}
	var failed []string
	for _, se := range errs {
		failed = append(failed, fmt.Sprintf("%s: %v", se.Server, se.Err))
	}
	return text + " [red](" + strings.Join(failed, "; ") + ")[-]"
}

// recordCountText summarizes a record listing for the status line.
func recordCountText(count int) string {
	if count == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", count)
}
