// Package integration runs the featureflow binary against temporary repositories.
package integration

import (
	"testing"

	"featureflow.dev/featureflow/internal/testhelper"
)

// getFeatureflowBinary returns the path to the pre-built featureflow binary.
func getFeatureflowBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binaryPath := testhelper.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelper.GetBinaryError(); err != nil {
			t.Fatalf("failed to build featureflow binary: %v", err)
		}
		t.Fatal("featureflow binary not built")
	}
	return binaryPath
}
