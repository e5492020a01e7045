package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for file types the extractor does not
// recognize. There is no fallback for it.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a source container.
type Format string

const (
	FormatText   Format = "text"
	FormatHTML   Format = "html"
	FormatSRT    Format = "srt"
	FormatPDF    Format = "pdf"
	FormatSample Format = "sample"
)

// Document is the plain text handed to the pipeline plus its provenance.
type Document struct {
	Source string
	Format Format
	Title  string
	Text   string

	// Pages is the number of PDF pages read; zero for other formats.
	Pages int

	// Fallback is true when SampleText replaced an unreadable document.
	Fallback bool
}

// Options controls extraction.
type Options struct {
	// MaxPages caps how many PDF pages are read.
	MaxPages int

	Logger *zap.Logger
}

// DefaultOptions returns the standard extraction options.
func DefaultOptions() Options {
	return Options{MaxPages: 5}
}

// Sample returns the built-in sample document.
func Sample() Document {
	return Document{Source: "sample", Format: FormatSample, Title: "Active Recall", Text: SampleText}
}

// FormatOf maps a path's extension to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".text":
		return FormatText, nil
	case ".html", ".htm", ".xhtml":
		return FormatHTML, nil
	case ".srt":
		return FormatSRT, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// File extracts plain text from the document at path.
func File(path string, opts Options) (Document, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultOptions().MaxPages
	}

	format, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}

	if format == FormatPDF {
		return extractPDF(path, opts)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	doc := Document{Source: path, Format: format, Title: titleOf(path)}
	switch format {
	case FormatHTML:
		title, text, err := HTML(string(raw))
		if err != nil {
			return Document{}, fmt.Errorf("parse html %s: %w", path, err)
		}
		if title != "" {
			doc.Title = title
		}
		doc.Text = text
	case FormatSRT:
		doc.Text = SRT(string(raw))
	default:
		doc.Text = string(raw)
	}

	return doc, nil
}

func titleOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
