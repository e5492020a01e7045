package extract

import (
	"strings"
)

// Cue is one subtitle entry.
type Cue struct {
	Start, End string
	Text       string
}

// ParseSRT parses SubRip subtitles. Sequence numbers are skipped and each
// text line becomes a cue carrying the most recent timestamps.
func ParseSRT(transcript string) []Cue {
	//	1
	//	00:00:00,000 --> 00:00:01,830
	//	I'm happy to
	//	have you here today.
	var (
		cues       []Cue
		start, end string
	)

	for _, line := range strings.Split(strings.ReplaceAll(transcript, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
		if line == "" || isDigitOnly(line) {
			continue
		}
		if strings.Contains(line, "-->") {
			if parts := strings.SplitN(line, "-->", 2); len(parts) == 2 {
				start = strings.TrimSpace(parts[0])
				end = strings.TrimSpace(parts[1])
			}
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: line})
	}

	return cues
}

// SRT flattens a transcript into text with one sentence per line, since
// single cues are usually too short to stand alone as sections.
func SRT(transcript string) string {
	var (
		lines   []string
		current []string
	)
	for _, c := range ParseSRT(transcript) {
		current = append(current, c.Text)
		if strings.HasSuffix(c.Text, ".") || strings.HasSuffix(c.Text, "!") || strings.HasSuffix(c.Text, "?") {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
