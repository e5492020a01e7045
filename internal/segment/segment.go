package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// One or more blank or whitespace-only lines end a paragraph.
	paragraphBreak = regexp.MustCompile(`\n(?:[^\S\n]*\n)+`)

	// A sentence is a run of non-terminators followed by its terminator
	// run, if any. The last sentence of a section may have none.
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// Segment splits text into chunks. Output is deterministic for identical
// text and cfg.
func Segment(text string, cfg Config) []Chunk {
	cfg = cfg.withDefaults()

	var chunks []Chunk
	emit := func(content string, kind Kind) {
		chunks = append(chunks, newChunk(len(chunks)+1, content, kind))
	}

	for _, section := range Sections(text) {
		if utf8.RuneCountInString(section) < cfg.MinSectionChars {
			continue
		}
		if utf8.RuneCountInString(section) <= cfg.MaxChars {
			emit(section, KindWhole)
			continue
		}
		for _, part := range packSentences(Sentences(section), cfg.MaxChars) {
			emit(part, KindSplit)
		}
	}

	return chunks
}

// Sections returns the non-empty paragraphs of text, one line each.
// Paragraphs are separated by blank lines; the hard-wrapped lines inside a
// paragraph are rejoined and every whitespace run collapses to one space.
func Sections(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		if line := strings.Join(strings.Fields(para), " "); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Sentences splits a section on sentence-terminating punctuation. Each
// returned sentence keeps its terminator and is trimmed.
func Sentences(section string) []string {
	var out []string
	for _, s := range sentencePattern.FindAllString(section, -1) {
		if s = strings.TrimSpace(s); s != "" && strings.Trim(s, ".!?") != "" {
			out = append(out, s)
		}
	}
	return out
}

// packSentences greedily joins sentences with a single space into parts no
// longer than maxChars. A sentence that alone exceeds maxChars becomes its
// own part.
func packSentences(sentences []string, maxChars int) []string {
	var (
		parts   []string
		current strings.Builder
		curLen  int
	)

	flush := func() {
		if curLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			curLen = 0
		}
	}

	for _, s := range sentences {
		n := utf8.RuneCountInString(s)
		if curLen > 0 && curLen+1+n > maxChars {
			flush()
		}
		if curLen > 0 {
			current.WriteByte(' ')
			curLen++
		}
		current.WriteString(s)
		curLen += n
	}
	flush()

	return parts
}

func newChunk(ordinal int, content string, kind Kind) Chunk {
	return Chunk{
		ID:        ChunkID(ordinal),
		Content:   content,
		Length:    utf8.RuneCountInString(content),
		WordCount: len(strings.Fields(content)),
		Kind:      kind,
	}
}
