// Package build drives the batch transform: enumerate entries, render
// each one, splice it into the page template and write the output file.
package build

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/lunabyte/splice/internal/config"
	"github.com/lunabyte/splice/internal/inject"
	"github.com/lunabyte/splice/internal/model"
	"github.com/lunabyte/splice/internal/render"
)

// Run validates the template file, reads it, and executes a full build.
// Progress and the final summary are written to out.
func Run(cfg config.Config, site *model.Site, out io.Writer) error {
	raw, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("template file '%s' not found", cfg.TemplateFile)
		}
		return fmt.Errorf("failed to read template file '%s': %w", cfg.TemplateFile, err)
	}
	return RunWithTemplate(string(raw), cfg, site, out)
}

// RunWithTemplate executes a build against an explicit template text,
// so repeated builds (and tests) never share module-level state.
func RunWithTemplate(tpl string, cfg config.Config, site *model.Site, out io.Writer) error {
	info, err := os.Stat(cfg.EntriesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("entries directory '%s' not found", cfg.EntriesDir)
		}
		return fmt.Errorf("failed to stat entries directory '%s': %w", cfg.EntriesDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("entries path '%s' is not a directory", cfg.EntriesDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", cfg.OutputDir, err)
	}

	dirents, err := os.ReadDir(cfg.EntriesDir)
	if err != nil {
		return fmt.Errorf("failed to list entries directory '%s': %w", cfg.EntriesDir, err)
	}

	// os.ReadDir sorts by filename, which fixes both the processing
	// order and which entry wins a slug collision.
	var names []string
	for _, d := range dirents {
		if d.IsDir() || !render.Supported(filepath.Ext(d.Name())) {
			continue
		}
		names = append(names, d.Name())
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "No entry files found in '%s'. Nothing to do.\n", cfg.EntriesDir)
		return nil
	}

	strategy := inject.Probe(tpl)
	var written []string

	for _, name := range names {
		path := filepath.Join(cfg.EntriesDir, name)
		fmt.Fprintf(out, "Processing %s\n", path)

		fragment, meta, err := render.File(path)
		if err != nil {
			return fmt.Errorf("failed to render entry '%s': %w", path, err)
		}

		doc, err := strategy.Apply(fragment)
		if err != nil {
			return fmt.Errorf("failed to inject entry '%s' into template: %w", path, err)
		}

		basename := strings.TrimSuffix(name, filepath.Ext(name))
		title := inject.ResolveTitle(meta, fragment, basename)
		doc, err = inject.WriteTitle(doc, title)
		if err != nil {
			return fmt.Errorf("failed to set title for entry '%s': %w", path, err)
		}

		outputName := slug.Make(basename) + ".html"
		outputPath := filepath.Join(cfg.OutputDir, outputName)
		if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write output file '%s': %w", outputPath, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", outputPath)

		written = append(written, outputName)
		site.Pages = append(site.Pages, &model.Page{
			Title:       title,
			Slug:        strings.TrimSuffix(outputName, ".html"),
			SourcePath:  path,
			OutputName:  outputName,
			ContentHTML: template.HTML(fragment),
			Frontmatter: meta,
		})
	}

	if cfg.IndexPage {
		if err := writeIndex(cfg, site, out); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Generated %d page(s): %s\n", len(written), strings.Join(written, ", "))
	return nil
}
