package utils

import (
	"regexp"
	"strings"
)

const (
	// FeatureBranchPrefix is prepended to a feature name to form its branch name
	FeatureBranchPrefix = "feature/"

	// ChangeTypeFeature is the change type of branches under FeatureBranchPrefix
	ChangeTypeFeature = "feature"

	// ChangeTypeOther is the change type of branches without a type prefix
	ChangeTypeOther = "other"

	// FeatureNameWarning is shown when a feature name is rejected
	FeatureNameWarning = "Names can only contain dashes, 0-9, and a-z"
)

// FeatureNameRegex matches valid feature names
var FeatureNameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidFeatureName reports whether name can be used for a feature branch
func IsValidFeatureName(name string) bool {
	return FeatureNameRegex.MatchString(name)
}

// FeatureBranchName returns the branch name for a feature name
func FeatureBranchName(name string) string {
	return FeatureBranchPrefix + name
}

// FeatureNameFromBranch is the inverse of FeatureBranchName.
// It returns false when branchName is not a valid feature branch.
func FeatureNameFromBranch(branchName string) (string, bool) {
	name, ok := strings.CutPrefix(branchName, FeatureBranchPrefix)
	if !ok || !IsValidFeatureName(name) {
		return "", false
	}
	return name, true
}

// ChangeTypeOf classifies a branch by the segment before its first slash,
// e.g. "feature/login" is a "feature" and "main" is "other".
func ChangeTypeOf(branchName string) string {
	prefix, _, found := strings.Cut(branchName, "/")
	if !found || prefix == "" {
		return ChangeTypeOther
	}
	return prefix
}
