// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ThresholdsFileName = "tpfqc.yaml"
	ConfigDirectory    = ".config/tpfqc"
	DataDirectory      = ".astroqc/tpfqc"
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) ConfigDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure tpfqc config directory")
	}

	return os.MkdirAll(configPath, 0700)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure tpfqc data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}

// ThresholdsFile returns the path of the thresholds file in the config
// directory, or "" when none exists. An explicit --config flag always
// wins over this discovery.
func (cliconfig) ThresholdsFile() string {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return ""
	}

	path := filepath.Join(configPath, ThresholdsFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
