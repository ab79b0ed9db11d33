package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// parentSearchDepth bounds how far up LoadDefaultEnvFile looks for a .env
const parentSearchDepth = 3

// LoadEnvFile loads environment variables from path. A missing file is not
// an error; loaded reports whether anything was read.
func LoadEnvFile(path string) (loaded bool, err error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	// Variables already present in the environment win over the file
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

// LoadDefaultEnvFile loads .env from the working directory or one of its
// parents and returns the path it loaded, or "" when none was found.
func LoadDefaultEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for i := 0; i <= parentSearchDepth; i++ {
		envPath := filepath.Join(dir, ".env")
		loaded, err := LoadEnvFile(envPath)
		if err != nil {
			return "", err
		}
		if loaded {
			return envPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}
