package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lunabyte/splice/cmd"
	"github.com/lunabyte/splice/internal/model"
	"gopkg.in/yaml.v2"
)

var site model.Site

// loadSiteParams reads config.yaml into the site-wide params map. The
// file is optional; typed settings are handled separately by viper.
func loadSiteParams(filename string) error {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading config file %s: %w", filename, err)
	}

	err = yaml.Unmarshal(yamlFile, &site.Params)
	if err != nil {
		return fmt.Errorf("error unmarshalling config file %s: %w", filename, err)
	}
	return nil
}

func main() {
	if err := loadSiteParams("config.yaml"); err != nil {
		log.Fatalf("Error loading site configuration: %v", err)
	}
	cmd.Execute(&site)
}
