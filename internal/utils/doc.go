// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Feature name validation and feature branch naming
//   - Branch change-type classification
//   - Terminal interactivity detection
package utils
