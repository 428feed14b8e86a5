package config

type Config struct {
	SiteTitle    string `mapstructure:"siteTitle"`
	EntriesDir   string `mapstructure:"entriesDir"`
	TemplateFile string `mapstructure:"templateFile"`
	OutputDir    string `mapstructure:"outputDir"`
	IndexPage    bool   `mapstructure:"indexPage"`
}
