package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/psidex/citygraph/internal/errors"
)

// Migrate converts a directory of flat <name>.json graph files into the layout Save
// writes: <name>/graph.json. The flat files are left in place. It returns the
// directories written, in directory order.
func Migrate(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read dir")
	}

	created := []string{}
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".json") || name == ImportMapFile {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return created, errors.Wrapf(err, "read file: %s", name)
		}

		newDir := filepath.Join(dir, strings.TrimSuffix(name, ".json"))
		if err := os.MkdirAll(newDir, 0o755); err != nil {
			return created, errors.Wrapf(err, "create dir: %s", newDir)
		}
		newFilePath := filepath.Join(newDir, GraphFile)
		if err := os.WriteFile(newFilePath, data, 0o644); err != nil {
			return created, errors.Wrapf(err, "write file: %s", newFilePath)
		}
		created = append(created, newDir)
	}

	return created, nil
}
