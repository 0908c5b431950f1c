// Package tui provides the terminal output for featureflow.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss and termenv)
//   - Step progress for feature pipelines (using bubbletea)
package tui
