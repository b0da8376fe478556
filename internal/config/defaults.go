package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		DefaultRoot: "", // prompt for a folder when unset
		SortBySize:  false,
		Cleanup: CleanupConfig{
			Enabled: false, // deletion requires explicit opt-in
			AgeDays: 30,
		},
		Verbose: false,
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# FileZen Configuration File
# Location: ~/.config/filezen/config.yaml

# Default folder to organize when no path is given on the command line.
# Must be an absolute path. Leave empty to always pass a folder.
default_root: ""

# Move smaller files first within each category
sort_by_size: false

# Stale-file cleanup. When enabled, files older than age_days are
# deleted before the folder is organized. Disabled by default.
cleanup:
  enabled: false
  age_days: 30

# Verbose output
verbose: false
`
}
