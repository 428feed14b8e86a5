package inject

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveTitle picks the display title for an entry: front-matter
// `title`, then the first h1/h2 heading of the fragment, then the
// entry's basename. The final fallback means resolution never fails.
func ResolveTitle(meta map[string]interface{}, fragment, basename string) string {
	if t, ok := meta["title"].(string); ok && t != "" {
		return t
	}
	if h := FragmentHeading(fragment); h != "" {
		return h
	}
	return basename
}

// FragmentHeading returns the trimmed text of the first non-empty h1 or
// h2 in the fragment, or "" when there is none. Parse failures are
// swallowed and reported as "no heading".
func FragmentHeading(fragment string) string {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return ""
	}

	var heading string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H1 || n.DataAtom == atom.H2) {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				heading = text
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, n := range nodes {
		if walk(n) {
			break
		}
	}
	return heading
}

// WriteTitle sets the document's <title> text, creating the element
// inside <head> when absent. A document that somehow ends up without a
// head is returned untouched.
func WriteTitle(doc, title string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	if el := findElement(root, atom.Title); el != nil {
		replaceChildren(el, []*html.Node{{Type: html.TextNode, Data: title}})
		return renderDocument(root)
	}

	head := findElement(root, atom.Head)
	if head == nil {
		return doc, nil
	}
	el := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(el)
	return renderDocument(root)
}
