package build

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lunabyte/splice/internal/config"
	"github.com/lunabyte/splice/internal/model"
)

const indexLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.SiteTitle}}</title>
</head>
<body>
<h1>{{.SiteTitle}}</h1>
{{with .Params.description}}<p>{{.}}</p>
{{end}}<ul>
{{range .Entries}}<li><a href="{{.Href}}">{{.Text}}</a></li>
{{end}}</ul>
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexLayout))

var titleCaser = cases.Title(language.English)

type indexEntry struct {
	Href string
	Text string
}

// writeIndex renders an index.html linking every generated page.
func writeIndex(cfg config.Config, site *model.Site, out io.Writer) error {
	entries := make([]indexEntry, 0, len(site.Pages))
	for _, p := range site.Pages {
		entries = append(entries, indexEntry{Href: p.OutputName, Text: displayName(p)})
	}

	data := struct {
		SiteTitle string
		Params    map[string]interface{}
		Entries   []indexEntry
	}{
		SiteTitle: cfg.SiteTitle,
		Params:    site.Params,
		Entries:   entries,
	}

	outputPath := filepath.Join(cfg.OutputDir, "index.html")
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create index file '%s': %w", outputPath, err)
	}
	defer f.Close()

	if err := indexTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute index template: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", outputPath)
	return nil
}

// displayName prefers the page's resolved title; a bare filename
// fallback gets hyphens and underscores spaced out and title-cased.
func displayName(p *model.Page) string {
	base := strings.TrimSuffix(filepath.Base(p.SourcePath), filepath.Ext(p.SourcePath))
	if p.Title != base {
		return p.Title
	}
	clean := strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return titleCaser.String(clean)
}
