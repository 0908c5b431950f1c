// Package config manages featureflow project configuration.
//
// It handles:
//   - Reading and writing the committed .featureflow.yml file
//   - Defaults for the base branch, remotes and GitHub settings
//   - Environment variable overrides
package config
