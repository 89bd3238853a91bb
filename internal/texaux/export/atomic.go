package export

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes the output of fill to a temporary file next to
// path and renames it over path once fill succeeds. Readers see either the
// old or the complete new file.
func WriteFileAtomic(path string, fill func(f *os.File) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return writeFailed(err, "creating temporary file in %s", dir).WithDetail("path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return writeFailed(err, "setting permissions on %s", tmpName).WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		return writeFailed(err, "closing %s", tmpName).WithDetail("path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeFailed(err, "replacing %s", path).WithDetail("path", path)
	}
	return nil
}
