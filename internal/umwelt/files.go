package umwelt

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckBuildContext fails early when docker would: a missing context directory or Dockerfile.
func CheckBuildContext(contextDir, dockerfile string) error {
	info, err := os.Stat(contextDir)
	if err != nil {
		return fmt.Errorf("build context %s: %w", contextDir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("build context %s is not a directory", contextDir)
	}

	if dockerfile == "" {
		dockerfile = filepath.Join(contextDir, "Dockerfile")
	}

	if _, err := os.Stat(dockerfile); err != nil {
		return fmt.Errorf("dockerfile %s: %w", dockerfile, err)
	}

	return nil
}
