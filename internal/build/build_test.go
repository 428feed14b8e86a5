package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/require"

	"github.com/lunabyte/splice/internal/config"
	"github.com/lunabyte/splice/internal/model"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head></head>
<body>
<main id="projectContent"></main>
</body>
</html>`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		SiteTitle:    "Test Wiki",
		EntriesDir:   filepath.Join(root, "entries"),
		TemplateFile: filepath.Join(root, "data.html"),
		OutputDir:    filepath.Join(root, "dist"),
	}
	require.NoError(t, os.Mkdir(cfg.EntriesDir, 0o755))
	require.NoError(t, os.WriteFile(cfg.TemplateFile, []byte(testTemplate), 0o644))
	return cfg
}

func writeEntry(t *testing.T, cfg config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.EntriesDir, name), []byte(content), 0o644))
}

func runBuild(t *testing.T, cfg config.Config) (*model.Site, string) {
	t.Helper()
	site := &model.Site{}
	var buf bytes.Buffer
	require.NoError(t, Run(cfg, site, &buf))
	return site, buf.String()
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "hello.md", "---\ntitle: Hello World\n---\n# Greeting\n\nHi there.\n")

	site, out := runBuild(t, cfg)

	outPath := filepath.Join(cfg.OutputDir, "hello.html")
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	doc := string(data)
	require.Contains(t, doc, "<title>Hello World</title>")
	require.Contains(t, doc, `id="projectContent"`)
	require.Contains(t, doc, "<p>Hi there.</p>")
	require.Contains(t, doc, "Greeting")

	require.Len(t, site.Pages, 1)
	require.Equal(t, "Hello World", site.Pages[0].Title)
	require.Equal(t, "hello", site.Pages[0].Slug)

	require.Contains(t, out, "Wrote "+outPath)
	require.Contains(t, out, "Generated 1 page(s): hello.html")
}

func TestRun_MissingTemplate_Fatal(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "hello.md", "body\n")
	require.NoError(t, os.Remove(cfg.TemplateFile))

	err := Run(cfg, &model.Site{}, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")

	// No partial state: the output directory was never created.
	_, statErr := os.Stat(cfg.OutputDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingEntriesDir_Fatal(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.EntriesDir))

	err := Run(cfg, &model.Site{}, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "entries directory")

	_, statErr := os.Stat(cfg.OutputDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_EmptyEntriesDir_SucceedsWithoutOutput(t *testing.T) {
	cfg := testConfig(t)

	_, out := runBuild(t, cfg)
	require.Contains(t, out, "No entry files found")

	// The output directory exists but holds nothing.
	dirents, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Empty(t, dirents)
}

func TestRun_FiltersUnsupportedFilesAndSubdirs(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "keep.md", "kept\n")
	writeEntry(t, cfg, "upper.MD", "upper\n")
	writeEntry(t, cfg, "raw.html", "<p>raw</p>")
	writeEntry(t, cfg, "skip.txt", "nope\n")
	require.NoError(t, os.Mkdir(filepath.Join(cfg.EntriesDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.EntriesDir, "sub", "nested.md"), []byte("nested\n"), 0o644))

	site, _ := runBuild(t, cfg)
	require.Len(t, site.Pages, 3)

	dirents, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, d := range dirents {
		names = append(names, d.Name())
	}
	require.ElementsMatch(t, []string{"keep.html", "upper.html", "raw.html"}, names)
}

func TestRun_HTMLEntry_HeadingBecomesTitle(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "page.html", "<h1>Beta</h1><p>content</p>")

	runBuild(t, cfg)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "page.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>Beta</title>")
}

func TestRun_NoTitleAnywhere_BasenameWins(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "my-notes.md", "plain text, no heading\n")

	runBuild(t, cfg)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "my-notes.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>my-notes</title>")
}

func TestRun_SlugCollision_LastEntryWins(t *testing.T) {
	cfg := testConfig(t)
	// Both slugify to "a-b"; sorted order makes "a-b.md" the later one.
	writeEntry(t, cfg, "a b.md", "first\n")
	writeEntry(t, cfg, "a-b.md", "second\n")

	runBuild(t, cfg)

	dirents, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Len(t, dirents, 1)
	require.Equal(t, "a-b.html", dirents[0].Name())

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a-b.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "second")
	require.NotContains(t, string(data), "first")
}

func TestRun_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "hello.md", "---\ntitle: Hello\n---\nbody\n")

	runBuild(t, cfg)
	outPath := filepath.Join(cfg.OutputDir, "hello.html")
	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	runBuild(t, cfg)
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRun_MarkerTemplate_UsesTextualReplace(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.TemplateFile, []byte("<html><head></head><body><!--ENTRY_CONTENT--></body></html>"), 0o644))
	writeEntry(t, cfg, "hello.md", "marker body\n")

	runBuild(t, cfg)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "hello.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<p>marker body</p>")
	require.NotContains(t, string(data), "ENTRY_CONTENT")
}

func TestRun_IndexPage_LinksEveryEntry(t *testing.T) {
	cfg := testConfig(t)
	cfg.IndexPage = true
	writeEntry(t, cfg, "hello.md", "---\ntitle: Hello World\n---\nbody\n")
	writeEntry(t, cfg, "my-notes.md", "no title here\n")

	site := &model.Site{Params: map[string]interface{}{"description": "A test wiki"}}
	var buf bytes.Buffer
	require.NoError(t, Run(cfg, site, &buf))

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	doc := string(data)

	require.Contains(t, doc, "<title>Test Wiki</title>")
	require.Contains(t, doc, "A test wiki")
	require.Contains(t, doc, `<a href="hello.html">Hello World</a>`)
	// The basename fallback gets prettified for display.
	require.Contains(t, doc, `<a href="my-notes.html">My Notes</a>`)
}

func TestRun_NoIndexByDefault(t *testing.T) {
	cfg := testConfig(t)
	writeEntry(t, cfg, "hello.md", "body\n")

	runBuild(t, cfg)

	_, err := os.Stat(filepath.Join(cfg.OutputDir, "index.html"))
	require.True(t, os.IsNotExist(err))
}

func TestSlug_Deterministic(t *testing.T) {
	require.Equal(t, "my-cool-project", slug.Make("My Cool Project!"))
	require.Equal(t, "my-cool-project", slug.Make("My Cool Project!"))
	require.Equal(t, "a-b", slug.Make("a b"))
	require.Equal(t, "a-b", slug.Make("a-b"))
}
