// Package testhelper builds the featureflow binary once for end-to-end tests.
package testhelper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// BinaryEnv points at a prebuilt binary, skipping the build
const BinaryEnv = "FEATUREFLOW_TEST_BINARY"

var (
	binaryOnce sync.Once
	binaryPath string
	binaryErr  error
)

// GetSharedBinaryPath returns the featureflow binary path, building it on first use.
// Safe to call from any test package.
func GetSharedBinaryPath() string {
	binaryOnce.Do(func() {
		if prebuilt := os.Getenv(BinaryEnv); prebuilt != "" {
			binaryPath, binaryErr = checkPrebuilt(prebuilt)
			return
		}
		binaryPath, binaryErr = buildBinary()
	})
	return binaryPath
}

// GetBinaryError returns any error that occurred during binary building.
func GetBinaryError() error {
	return binaryErr
}

func checkPrebuilt(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", BinaryEnv, err)
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("%s: %s is not an executable file", BinaryEnv, path)
	}
	return path, nil
}

func buildBinary() (string, error) {
	moduleRoot, err := moduleRoot()
	if err != nil {
		return "", err
	}

	outDir, err := os.MkdirTemp("", "featureflow-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	out := filepath.Join(outDir, "featureflow")
	cmd := exec.Command("go", "build", "-o", out, "./cmd/featureflow")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(outDir)
		return "", fmt.Errorf("go build failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return out, nil
}

// moduleRoot asks the go tool for the go.mod of the package under test
func moduleRoot() (string, error) {
	output, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", fmt.Errorf("go env GOMOD: %w", err)
	}
	gomod := strings.TrimSpace(string(output))
	if gomod == "" || gomod == os.DevNull {
		return "", fmt.Errorf("not inside a module")
	}
	return filepath.Dir(gomod), nil
}
