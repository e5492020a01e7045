package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

const (
	noiseSelector = "script, style, noscript, nav, footer, header, aside, form"
	blockSelector = "p, li, h1, h2, h3, h4, h5, h6, blockquote, pre, dd, dt, td, figcaption"
)

// HTML returns the page title and its readable text, one line per block
// element. Navigation, scripts and other chrome are dropped.
func HTML(page string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", err
	}

	title := collapse(doc.Find("title").First().Text())
	if title == "" {
		title = collapse(doc.Find("h1").First().Text())
	}

	doc.Find(noiseSelector).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	body := doc.Find("body")
	var lines []string
	body.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Leaf blocks only, so nested lists and quotes are not repeated.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if line := collapse(s.Text()); line != "" {
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		if text := collapse(body.Text()); text != "" {
			lines = append(lines, text)
		}
	}

	return title, strings.Join(lines, "\n"), nil
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}
