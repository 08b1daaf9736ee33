package fs

import (
	"fmt"
	"io"
	"os"
)

// MmapThreshold is the file size from which ReadFile maps the file into
// memory instead of reading it through the page cache with read(2).
const MmapThreshold = 4 << 20

// OSFS is a production implementation of FS backed by the local disk.
type OSFS struct{}

func NewOSFS() *OSFS {
	return &OSFS{}
}

func (r *OSFS) Open(path string) (io.ReadSeekCloser, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *OSFS) Stat(path string) (os.FileInfo, error) {
	return stat(path)
}

// ReadFile returns the whole file. Large files are copied out of a read-only
// memory mapping.
func (r *OSFS) ReadFile(path string) ([]byte, error) {
	fi, err := stat(path)
	if err != nil || fi.Size() < MmapThreshold || !fi.Mode().IsRegular() {
		return readFile(path)
	}

	m, err := mmapOpen(path)
	if err != nil {
		return nil, fmt.Errorf("mmap %q: %w", path, err)
	}
	defer m.Close()

	buf := make([]byte, m.Len())
	if _, err := m.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read mapped %q: %w", path, err)
	}
	return buf, nil
}

func (r *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return readDir(path)
}

func (r *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeFile(path, data, perm)
}

func (r *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return mkdirAll(path, perm)
}

func (r *OSFS) Remove(path string) error {
	return remove(path)
}

func (r *OSFS) Rename(oldPath, newPath string) error {
	return rename(oldPath, newPath)
}

func (r *OSFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f, err := createTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return f, f.Name(), nil
}

func (r *OSFS) IsNotExist(err error) bool {
	return isNotExist(err)
}

func (r *OSFS) IsDir(path string) bool {
	return isDir(path)
}

func (r *OSFS) Exists(path string) bool {
	return exists(path)
}
