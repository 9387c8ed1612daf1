package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath points at the configuration file when no -config flag is given.
const EnvConfigPath = "COVIDBOT_CONFIG_PATH"

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag (returned verbatim so a wrong path fails loudly)
// 2. COVIDBOT_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
// An empty result means no config file was found and defaults apply.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	envPath := os.Getenv(EnvConfigPath)
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if errExe == nil && exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
