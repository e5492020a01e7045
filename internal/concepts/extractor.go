package concepts

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor derives study concepts from raw text. It is recall-biased: it
// always returns between MinConcepts and MaxCandidates entries, padding
// with fallback concepts when the text yields too few.
type Extractor struct {
	cfg      Config
	patterns []*regexp.Regexp
}

// NewExtractor compiles the configured patterns.
func NewExtractor(cfg Config) (*Extractor, error) {
	e := &Extractor{cfg: cfg}
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile concept pattern %q: %w", p, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("concept pattern %q has no capture group", p)
		}
		e.patterns = append(e.patterns, re)
	}
	return e, nil
}

// Extract returns the normalized concept list for text.
func (e *Extractor) Extract(text string) []string {
	set := newConceptSet()
	lower := strings.ToLower(text)

	for _, v := range e.cfg.Vocabulary {
		if set.len() >= e.cfg.MaxCandidates {
			break
		}
		if v = Normalize(v); v != "" && containsPhrase(lower, v) {
			set.add(v)
		}
	}

	for _, re := range e.patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if set.len() >= e.cfg.MaxCandidates {
				break
			}
			phrase := Normalize(m[1])
			n := utf8.RuneCountInString(phrase)
			if n >= e.cfg.MinPhraseRunes && n <= e.cfg.MaxPhraseRunes {
				set.add(phrase)
			}
		}
	}

	if set.len() == 0 {
		for _, w := range capitalizedWords(text, e.cfg.MinGeneralRunes) {
			if set.len() >= e.cfg.MaxGeneral {
				break
			}
			set.add(Normalize(w))
		}
	}

	if set.len() >= e.cfg.MinConcepts {
		return set.first(e.cfg.MaxCandidates)
	}

	for _, f := range e.cfg.Fallback {
		if set.len() >= e.cfg.MinConcepts {
			break
		}
		set.add(Normalize(f))
	}
	return set.first(e.cfg.MaxPadded)
}

// Normalize lower-cases a phrase, trims it and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsPhrase reports whether phrase occurs in text as whole words, so
// "formación" does not match inside "información".
func containsPhrase(text, phrase string) bool {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !unicode.IsLetter(before)) && (end == len(text) || !unicode.IsLetter(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// capitalizedWords returns words that start with an upper-case letter,
// continue in lower case and have at least minRunes letters, in order of
// first appearance.
func capitalizedWords(text string, minRunes int) []string {
	words := strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })

	var out []string
	for _, w := range words {
		if utf8.RuneCountInString(w) < minRunes {
			continue
		}
		first, size := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(first) {
			continue
		}
		if strings.IndexFunc(w[size:], func(r rune) bool { return !unicode.IsLower(r) }) >= 0 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// conceptSet is an insertion-ordered set of normalized concepts.
type conceptSet struct {
	seen  map[string]bool
	items []string
}

func newConceptSet() *conceptSet {
	return &conceptSet{seen: make(map[string]bool)}
}

func (s *conceptSet) add(c string) {
	if c == "" || s.seen[c] {
		return
	}
	s.seen[c] = true
	s.items = append(s.items, c)
}

func (s *conceptSet) len() int { return len(s.items) }

func (s *conceptSet) first(n int) []string {
	if len(s.items) > n {
		return append([]string(nil), s.items[:n]...)
	}
	return append([]string(nil), s.items...)
}
