package stores

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomicFile replaces the file at path with data.  The bytes land in a
// temp file in the same directory which is then renamed over the target, so a
// concurrent reader never observes a partial record.
func writeAtomicFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	// No-op after a successful rename
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
