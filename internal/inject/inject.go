// Package inject splices a rendered HTML fragment into a page template
// and resolves the resulting document's title.
package inject

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TargetID is the element identifier the fixed template is expected to
// carry; its inner content is replaced by the entry fragment.
const TargetID = "projectContent"

// AppendID identifies the wrapper element created when the template has
// a body but no injection target.
const AppendID = "entry-content"

const (
	markerPrimary   = "<!--ENTRY_CONTENT-->"
	markerSecondary = "<!--CONTENT-->"
)

// Mode identifies which injection path a template satisfies.
type Mode int

const (
	// ModeElement replaces the inner content of the #projectContent element.
	ModeElement Mode = iota
	// ModeMarkerPrimary substitutes the <!--ENTRY_CONTENT--> marker textually.
	ModeMarkerPrimary
	// ModeMarkerSecondary substitutes the <!--CONTENT--> marker textually.
	ModeMarkerSecondary
	// ModeBodyAppend appends a wrapper div as the last child of <body>.
	ModeBodyAppend
	// ModeConcat concatenates template and fragment with no document structure.
	ModeConcat
)

func (m Mode) String() string {
	switch m {
	case ModeElement:
		return "element"
	case ModeMarkerPrimary:
		return "marker-entry-content"
	case ModeMarkerSecondary:
		return "marker-content"
	case ModeBodyAppend:
		return "body-append"
	case ModeConcat:
		return "concat"
	}
	return "unknown"
}

// Strategy binds a template text to the single injection mode it
// satisfies. Apply re-parses the original text on every call, so a
// Strategy can be shared across entries without cross-entry mutation.
type Strategy struct {
	mode     Mode
	template string
}

// Probe inspects a template once and selects the first matching
// injection mode: element target, primary marker, secondary marker,
// body append, raw concatenation.
func Probe(template string) Strategy {
	s := Strategy{template: template}
	switch {
	case hasElementWithID(template, TargetID):
		s.mode = ModeElement
	case strings.Contains(template, markerPrimary):
		s.mode = ModeMarkerPrimary
	case strings.Contains(template, markerSecondary):
		s.mode = ModeMarkerSecondary
	case strings.Contains(strings.ToLower(template), "<body"):
		// html.Parse synthesizes a <body> for any input, so the raw
		// text decides between body-append and plain concatenation.
		s.mode = ModeBodyAppend
	default:
		s.mode = ModeConcat
	}
	return s
}

// Mode reports the injection path this strategy will take.
func (s Strategy) Mode() Mode { return s.mode }

// Apply produces a full document with fragment placed per the probed
// mode. A missing target never fails; only serialization errors surface.
func (s Strategy) Apply(fragment string) (string, error) {
	switch s.mode {
	case ModeElement:
		return s.applyElement(fragment)
	case ModeMarkerPrimary:
		return strings.Replace(s.template, markerPrimary, fragment, 1), nil
	case ModeMarkerSecondary:
		return strings.Replace(s.template, markerSecondary, fragment, 1), nil
	case ModeBodyAppend:
		return s.applyBodyAppend(fragment)
	default:
		return s.template + "\n" + fragment, nil
	}
}

func (s Strategy) applyElement(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s.template))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	target := findByID(doc, TargetID)
	if target == nil {
		// Probe saw the id but the parse normalized it away; degrade
		// the same way a marker-less, body-less template would.
		return s.template + "\n" + fragment, nil
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	replaceChildren(target, nodes)
	return renderDocument(doc)
}

func (s Strategy) applyBodyAppend(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s.template))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return s.template + "\n" + fragment, nil
	}

	wrapper := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: AppendID}},
	}
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	body.AppendChild(wrapper)
	return renderDocument(doc)
}

func hasElementWithID(template, id string) bool {
	doc, err := html.Parse(strings.NewReader(template))
	if err != nil {
		return false
	}
	return findByID(doc, id) != nil
}
