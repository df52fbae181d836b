package env

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const scratchPrefix = "dotnetup-"

// NewScratchDir creates a uniquely named temporary directory used to stage
// a download before it is moved into a system path.
func NewScratchDir() (string, error) {
	randomName, err := generateRandomName(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate random name: %w", err)
	}

	scratchPath := filepath.Join(os.TempDir(), scratchPrefix+randomName)

	if err := os.MkdirAll(scratchPath, 0o700); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return scratchPath, nil
}

// RemoveScratchDir removes a scratch directory previously created by
// NewScratchDir. Paths outside the system temp directory are refused so a
// bad caller cannot delete arbitrary trees.
func RemoveScratchDir(path string) error {
	cleaned := filepath.Clean(path)

	if !strings.HasPrefix(cleaned, filepath.Join(os.TempDir(), scratchPrefix)) {
		return fmt.Errorf("scratch path is not under the system temp directory: %s", path)
	}

	if _, err := os.Stat(cleaned); os.IsNotExist(err) {
		return nil
	}

	return os.RemoveAll(cleaned)
}

func generateRandomName(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	bytes := make([]byte, length)

	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i, b := range bytes {
		bytes[i] = charset[b%byte(len(charset))]
	}

	return string(bytes), nil
}
