package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS abstracts filesystem operations. Repository code talks to the disk only
// through this interface so that tests can swap in a MemoryFS.
type FS interface {
	Open(path string) (io.ReadSeekCloser, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)

	// CreateTempFile creates a new file in dir and returns it with its path.
	// Callers close it and rename it into place.
	CreateTempFile(dir, pattern string) (io.WriteCloser, string, error)

	IsNotExist(err error) bool
	Exists(path string) bool
	IsDir(path string) bool
}

// WriteFileAtomic writes data to a temp file next to path and renames it over
// path, so readers never observe a partially written file.
func WriteFileAtomic(fsys FS, path string, data []byte) error {
	tmp, tmpPath, err := fsys.CreateTempFile(filepath.Dir(path), TempPrefix+"*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		fsys.Remove(tmpPath)
		return err
	}
	return nil
}

// TempPrefix marks in-flight files written by WriteFileAtomic. Directory
// listings of stores skip names carrying it.
const TempPrefix = ".tmp-"

// IsTemp reports whether name is an in-flight temp file.
func IsTemp(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempPrefix)
}
