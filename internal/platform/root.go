package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SettingsFileNames are the names FindSettings looks for, in priority order.
var SettingsFileNames = []string{
	".autosave.yaml",
	".autosave.yml",
	".autosave.toml",
	".autosave.json",
}

// FindSettings looks upwards from startDir for a settings file and returns
// its absolute path.
func FindSettings(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range SettingsFileNames {
			if isFile(filepath.Join(dir, name)) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no settings file found from %s", abs)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
