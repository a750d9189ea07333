package fileform

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// OpenSource returns a schema source for a package given as a directory or
// a .tar, .tar.gz, or .tgz archive.
func OpenSource(path string) (schema.Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("fileform: package path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fileform: open package: %w", err)
	}
	if info.IsDir() {
		return schema.DirSource(path), nil
	}
	lower := strings.ToLower(path)
	for _, ext := range []string{".tar", ".tar.gz", ".tgz"} {
		if strings.HasSuffix(lower, ext) {
			return schema.TarSource(path), nil
		}
	}
	return nil, fmt.Errorf("fileform: %s is neither a directory nor a tar archive", path)
}
