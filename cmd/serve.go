// cmd/serve.go
package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lunabyte/splice/internal/build"
)

var serverPort int // For the --port flag

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Builds the site once and serves the output directory",
	Long: `The serve command performs a build, then starts a local web server
for previewing the output directory. It does not watch for changes; rerun
build (or restart serve) after editing entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Performing build...")
		// siteData is the package-level variable from cmd/root.go
		if err := build.Run(appConfig, siteData, os.Stdout); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Printf("Serving site from '%s' on http://localhost%s", appConfig.OutputDir, serverAddr)
		log.Println("Press Ctrl+C to stop the server.")

		if err := http.ListenAndServe(serverAddr, PreviewHandler(appConfig.OutputDir)); err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil // Should not be reached
	},
}

// PreviewHandler serves dir without directory listings and with
// no-cache headers, so edits show up on the next build without a
// hard refresh.
func PreviewHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, r.URL.Path, "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fs.ServeHTTP(w, r)
	})
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
