package segment

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const longLine = "La práctica de recuperación fortalece la memoria a largo plazo de forma notable."

func TestSegment_DropsShortSections(t *testing.T) {
	text := "Título\n\n" + longLine + "\n\nCorto\n"
	chunks := Segment(text, DefaultConfig())

	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Content != longLine {
		t.Errorf("Content = %q, want %q", chunks[0].Content, longLine)
	}
	if chunks[0].Kind != KindWhole {
		t.Errorf("Kind = %q, want %q", chunks[0].Kind, KindWhole)
	}
	if chunks[0].ID != "chunk_001" {
		t.Errorf("ID = %q, want chunk_001", chunks[0].ID)
	}
}

func TestSegment_NormalizesWhitespace(t *testing.T) {
	text := "  La   práctica de recuperación\tfortalece la memoria a largo plazo de forma notable.  \n\n\n"
	chunks := Segment(text, DefaultConfig())

	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Content != longLine {
		t.Errorf("Content = %q, want %q", chunks[0].Content, longLine)
	}
	if chunks[0].WordCount != 13 {
		t.Errorf("WordCount = %d, want 13", chunks[0].WordCount)
	}
	if chunks[0].Length != utf8.RuneCountInString(longLine) {
		t.Errorf("Length = %d, want rune count %d", chunks[0].Length, utf8.RuneCountInString(longLine))
	}
}

func TestSegment_SplitsLongSections(t *testing.T) {
	sentence := "Esta oración tiene exactamente la longitud suficiente para el test."
	section := strings.TrimSpace(strings.Repeat(sentence+" ", 12))
	cfg := Config{MaxChars: 200, MinSectionChars: 50}

	chunks := Segment(section, cfg)
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want at least 2", len(chunks))
	}

	var rebuilt []string
	for i, c := range chunks {
		if c.Kind != KindSplit {
			t.Errorf("chunks[%d].Kind = %q, want %q", i, c.Kind, KindSplit)
		}
		if c.Length > cfg.MaxChars {
			t.Errorf("chunks[%d].Length = %d, exceeds %d", i, c.Length, cfg.MaxChars)
		}
		if c.ID != ChunkID(i+1) {
			t.Errorf("chunks[%d].ID = %q, want %q", i, c.ID, ChunkID(i+1))
		}
		rebuilt = append(rebuilt, c.Content)
	}

	if got := strings.Join(rebuilt, " "); got != section {
		t.Errorf("split chunks lost content:\n got %q\nwant %q", got, section)
	}
}

func TestSegment_OversizedSentenceKeptWhole(t *testing.T) {
	huge := strings.Repeat("palabra ", 40) + "final."
	text := "Una oración breve para empezar el párrafo. " + huge
	cfg := Config{MaxChars: 100, MinSectionChars: 10}

	chunks := Segment(text, cfg)
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if chunks[1].Content != strings.TrimSpace(huge) {
		t.Errorf("oversized sentence = %q, want it untruncated", chunks[1].Content)
	}
	if chunks[1].Length <= cfg.MaxChars {
		t.Errorf("oversized Length = %d, expected > %d", chunks[1].Length, cfg.MaxChars)
	}
}

func TestSegment_OrdinalsSpanSections(t *testing.T) {
	text := longLine + "\n\n" + longLine + "\n\n" + longLine
	chunks := Segment(text, DefaultConfig())

	want := []string{"chunk_001", "chunk_002", "chunk_003"}
	if len(chunks) != len(want) {
		t.Fatalf("len(chunks) = %d, want %d", len(chunks), len(want))
	}
	for i, id := range want {
		if chunks[i].ID != id {
			t.Errorf("chunks[%d].ID = %q, want %q", i, chunks[i].ID, id)
		}
	}
}

func TestSegment_ReflowsWrappedLines(t *testing.T) {
	text := "Active Recall es una técnica de estudio que consiste en recuperar información\n" +
		"de la memoria activamente, en lugar de simplemente releer material de estudio.\n" +
		"  \n" +
		"Esta técnica mejora la retención a largo plazo porque fortalece las conexiones\n" +
		"neuronales y hace que el cerebro trabaje más para recordar la información.\n"

	chunks := Segment(text, DefaultConfig())
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if !strings.Contains(chunks[0].Content, "recuperar información de la memoria activamente") {
		t.Errorf("wrapped line not rejoined: %q", chunks[0].Content)
	}
	for _, c := range chunks {
		if !strings.HasSuffix(c.Content, ".") {
			t.Errorf("chunk %s ends mid-sentence: %q", c.ID, c.Content)
		}
	}
}

func TestSections(t *testing.T) {
	got := Sections("uno\r\ndos\r\n\r\n\n tres \t cuatro \n\n\n")
	want := []string{"uno dos", "tres cuatro"}

	if len(got) != len(want) {
		t.Fatalf("Sections() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sections()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSegment_Deterministic(t *testing.T) {
	text := strings.Repeat(longLine+" ", 20) + "\n" + longLine
	cfg := Config{MaxChars: 300, MinSectionChars: 50}

	a := Segment(text, cfg)
	b := Segment(text, cfg)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSegment_LengthBounds(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n  ",
		longLine,
		strings.Repeat("Uno dos tres cuatro cinco seis siete ocho. ", 30),
		strings.Repeat("¿Pregunta larga sin fin? ¡Exclamación! ", 25),
	}
	cfg := Config{MaxChars: 120, MinSectionChars: 50}

	for _, in := range inputs {
		for _, c := range Segment(in, cfg) {
			if c.Length < 1 {
				t.Errorf("empty chunk %q from input %q", c.ID, in)
			}
			if c.Length > cfg.MaxChars && len(Sentences(c.Content)) != 1 {
				t.Errorf("chunk %q has %d chars and %d sentences", c.ID, c.Length, len(Sentences(c.Content)))
			}
		}
	}
}

func TestSentences_KeepsTerminators(t *testing.T) {
	got := Sentences("Primera frase. ¿Segunda? ¡Tercera!! Resto sin punto")
	want := []string{"Primera frase.", "¿Segunda?", "¡Tercera!!", "Resto sin punto"}

	if len(got) != len(want) {
		t.Fatalf("Sentences() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sentences()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
