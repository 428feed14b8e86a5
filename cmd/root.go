package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lunabyte/splice/internal/config"
	"github.com/lunabyte/splice/internal/model"

	"github.com/spf13/viper"
)

var cfgFile string
var appConfig config.Config
var siteData *model.Site

var rootCmd = &cobra.Command{
	Use:   "splice",
	Short: "splice - inject entry files into a page template",
	Long: `splice reads entry files (Markdown or raw HTML snippets) from a
directory, renders each to HTML, splices the result into a fixed page
template, and writes one standalone output page per entry.`,
	PersistentPreRunE: func(_ *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func Execute(site *model.Site) {
	siteData = site
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig() error {
	v := viper.New()

	v.SetDefault("siteTitle", "Splice Site")
	v.SetDefault("entriesDir", "entries")
	v.SetDefault("templateFile", "data.html")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("indexPage", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SPLICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found in current directory: %w", cfgFile, err)
			}
			// Defaults and environment variables are enough to run.
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return nil
}
