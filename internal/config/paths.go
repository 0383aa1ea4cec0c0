package config

import (
	"os"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "GRADEBOOK_CONFIG"

	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "gradebook.yaml"
)

// FindConfigPath returns the config file to load, in priority order:
//  1. flagPath (from --config), returned even if it does not exist so the
//     caller reports the missing file
//  2. $GRADEBOOK_CONFIG
//  3. ./gradebook.yaml
//
// Returns "" when no config file is found.
func FindConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}

	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}

	if fileExists(ConfigFileName) {
		return ConfigFileName
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
