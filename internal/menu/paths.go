package menu

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizeDataPath makes sure a data file path carries the .csv extension.
func normalizeDataPath(path string) string {
	if !strings.HasSuffix(path, ".csv") {
		path += ".csv"
	}
	return path
}

// listCSVFiles returns the .csv files in dir, non-recursively.
func listCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// ensureDirExists creates the parent directory of path if needed.
func ensureDirExists(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
