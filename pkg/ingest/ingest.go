package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrEmptyDocument   = errors.New("document has no text")
)

type Document struct {
	Title string
	Text  string
}

var wsRX = regexp.MustCompile(`\n\s*\n+`)

// ExtractText turns an uploaded itinerary into plain text. Plain text,
// markdown and HTML are understood; the declared content type wins over the
// file extension unless it is a generic binary type.
func ExtractText(filename, contentType string, data []byte) (Document, error) {
	switch kind(filename, contentType) {
	case "text":
		if !utf8.Valid(data) {
			return Document{}, fmt.Errorf("%w: not UTF-8 text", ErrUnsupportedType)
		}
		text := cleanWhitespace(string(data))
		if text == "" {
			return Document{}, ErrEmptyDocument
		}
		return Document{Title: guessTitleFromText(text), Text: text}, nil
	case "html":
		return fromHTML(data)
	}
	return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, describe(filename, contentType))
}

func kind(filename, contentType string) string {
	mt, _, _ := mime.ParseMediaType(contentType)
	switch mt {
	case "text/plain", "text/markdown", "text/x-markdown":
		return "text"
	case "text/html", "application/xhtml+xml":
		return "html"
	case "", "application/octet-stream":
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".txt", ".md", ".markdown", ".text":
			return "text"
		case ".html", ".htm":
			return "html"
		}
	}
	return ""
}

func fromHTML(b []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return Document{}, err
	}
	doc.Find("script, style, noscript").Remove()
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,h4,p,li,td").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := cleanWhitespace(strings.Join(parts, "\n"))
	if text == "" {
		return Document{}, ErrEmptyDocument
	}
	if title == "" {
		title = guessTitleFromText(text)
	}
	return Document{Title: title, Text: text}, nil
}

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = wsRX.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	line = strings.TrimSpace(strings.TrimLeft(line, "# "))
	if len(line) > 120 {
		line = line[:120]
	}
	return line
}

func describe(filename, contentType string) string {
	if contentType != "" {
		return contentType
	}
	return filepath.Ext(filename)
}
