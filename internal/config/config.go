package config

import (
	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

// Config represents the scan configuration
type Config struct {
	// Scan settings
	Dir           string   `mapstructure:"dir"`            // directory to scan
	Recursive     bool     `mapstructure:"recursive"`      // also scan all subdirectories
	Exclude       []string `mapstructure:"exclude"`        // directory names to prune
	Extensions    []string `mapstructure:"extensions"`     // only record files with these extensions
	MaxSize       string   `mapstructure:"max_size"`       // skip files larger than this ("" = unlimited)
	IncludeHidden bool     `mapstructure:"include_hidden"` // record dotfiles and descend hidden directories

	// Report settings
	Format     string `mapstructure:"format"`      // csv, json
	OutputFile string `mapstructure:"output_file"` // report path ("" = contents.csv in the scanned directory)
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("recursive", false)
	v.SetDefault("exclude", []string{".git", "node_modules", "vendor", ".svn", ".hg"})
	v.SetDefault("max_size", "")
	v.SetDefault("include_hidden", true)
	v.SetDefault("format", "csv")
	v.SetDefault("output_file", "")

	// Read environment variables
	v.SetEnvPrefix("DIRCENSUS")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ShouldInclude determines if a file should be recorded based on extension
func (c *Config) ShouldInclude(extension string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	for _, ext := range c.Extensions {
		if ext == extension {
			return true
		}
	}
	return false
}

// MaxSizeBytes parses the max_size setting. Zero means unlimited.
func (c *Config) MaxSizeBytes() (int64, error) {
	if c.MaxSize == "" {
		return 0, nil
	}
	return units.RAMInBytes(c.MaxSize)
}
