package mailparse

import (
	"regexp"
	"strings"
)

var (
	attributionLine  = regexp.MustCompile(`(?i)^\s*on\s.+\swrote:\s*$`)
	attributionStart = regexp.MustCompile(`(?i)^\s*on\s.+`)
	wroteSuffix      = regexp.MustCompile(`(?i)\swrote:\s*$`)
	originalMessage  = regexp.MustCompile(`(?i)^\s*-{2,}\s*original message\s*-{2,}\s*$`)
)

// StripQuotedText removes quoted history from a plain-text reply. Everything
// from the first "On <date> ... wrote:" attribution is dropped, as is any line
// starting with '>'. Leading and trailing blank lines are trimmed.
func StripQuotedText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if attributionLine.MatchString(line) || originalMessage.MatchString(line) {
			break
		}
		// Clients wrap long attributions onto a second line.
		if attributionStart.MatchString(line) && i+1 < len(lines) && wroteSuffix.MatchString(lines[i+1]) {
			break
		}
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), ">") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	return trimBlankLines(kept)
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
