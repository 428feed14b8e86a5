// cmd/build.go
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lunabyte/splice/internal/build"
)

var (
	flagEntriesDir   string
	flagTemplateFile string
	flagOutputDir    string
	flagIndexPage    bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Renders every entry file into a standalone page",
	Long: `The build command lists the entries directory, converts each
Markdown or HTML entry to an HTML fragment, splices the fragment into the
page template, resolves the page title, and writes '<slug>.html' into the
output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("entries") {
			cfg.EntriesDir = flagEntriesDir
		}
		if cmd.Flags().Changed("template") {
			cfg.TemplateFile = flagTemplateFile
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = flagOutputDir
		}
		if cmd.Flags().Changed("index") {
			cfg.IndexPage = flagIndexPage
		}
		// siteData is the package-level variable from cmd/root.go
		return build.Run(cfg, siteData, os.Stdout)
	},
}

func init() {
	buildCmd.Flags().StringVar(&flagEntriesDir, "entries", "", "directory containing entry files (overrides config)")
	buildCmd.Flags().StringVar(&flagTemplateFile, "template", "", "page template file (overrides config)")
	buildCmd.Flags().StringVar(&flagOutputDir, "output", "", "output directory (overrides config)")
	buildCmd.Flags().BoolVar(&flagIndexPage, "index", false, "also generate an index.html listing all pages")
	rootCmd.AddCommand(buildCmd)
}
