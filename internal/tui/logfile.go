package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// FEATUREFLOW_LOG_FILE wins; "off" disables file logging and yields "".
// Otherwise ~/.featureflow/logs/featureflow.log is used.
func GetLogFilePath() string {
	if customPath := os.Getenv(EnvLogFile); customPath != "" {
		if customPath == "off" {
			return ""
		}
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "featureflow.log"
	}

	return filepath.Join(homeDir, ".featureflow", "logs", "featureflow.log")
}
