// Package render converts a single entry file into an HTML fragment
// plus its front-matter metadata.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// Entries are trusted local content and frequently embed raw HTML.
		gmhtml.WithUnsafe(),
	),
)

// Supported reports whether ext (with leading dot, any case) is an
// entry extension the renderer accepts.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".html", ".htm":
		return true
	}
	return false
}

// File reads the entry at path and renders it to an HTML fragment.
// Markdown entries have their front-matter split off and returned as
// meta; raw HTML entries pass through verbatim with empty meta.
func File(path string) (html string, meta map[string]interface{}, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read entry '%s': %w", path, err)
	}
	return Bytes(raw, filepath.Ext(path))
}

// Bytes renders raw entry content according to its file extension.
func Bytes(raw []byte, ext string) (string, map[string]interface{}, error) {
	switch strings.ToLower(ext) {
	case ".md":
		return markdown(raw)
	case ".html", ".htm":
		return string(raw), map[string]interface{}{}, nil
	default:
		return "", nil, fmt.Errorf("unsupported entry extension '%s'", ext)
	}
}

func markdown(raw []byte) (string, map[string]interface{}, error) {
	meta := map[string]interface{}{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse front-matter: %w", err)
	}

	var buf bytes.Buffer
	if err := mdParser.Convert(body, &buf); err != nil {
		return "", nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), meta, nil
}
