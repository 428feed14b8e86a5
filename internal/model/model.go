package model

import "html/template"

// Page represents a single processed entry and its generated output.
type Page struct {
	Title       string
	Slug        string
	SourcePath  string
	OutputName  string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
}

// Site holds site-wide data shared by every page: the raw params from
// config.yaml plus the pages generated during the current build.
type Site struct {
	Params map[string]interface{}
	Pages  []*Page
}
