package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS is a pure in-memory filesystem for tests or lightweight storage.
// It is safe for concurrent use.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
	seq   int
}

func NewMemoryFS() *MemoryFS {
	f := &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
	f.dirs["/"] = struct{}{}
	f.dirs["."] = struct{}{}
	return f
}

// normalize paths
func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func (f *MemoryFS) dirExists(p string) bool {
	_, ok := f.dirs[clean(p)]
	return ok
}

// FS Interface Implementation

func (f *MemoryFS) Open(p string) (io.ReadSeekCloser, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, ok := f.files[clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

type memReadSeekCloser struct {
	*bytes.Reader
}

func (m *memReadSeekCloser) Close() error { return nil }

func (f *MemoryFS) ReadFile(p string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, ok := f.files[clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	dir := path.Dir(p)
	if !f.dirExists(dir) {
		return fmt.Errorf("write: dir %q does not exist: %w", dir, fs.ErrNotExist)
	}
	if _, ok := f.dirs[p]; ok {
		return fmt.Errorf("write: %q is a directory", p)
	}
	f.files[p] = append([]byte(nil), data...)
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	cur := ""
	if strings.HasPrefix(p, "/") {
		cur = "/"
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		if _, ok := f.files[cur]; ok {
			return fmt.Errorf("mkdir: %q is a file", cur)
		}
		f.dirs[cur] = struct{}{}
	}
	return nil
}

func (f *MemoryFS) Remove(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	if _, ok := f.files[p]; ok {
		delete(f.files, p)
		return nil
	}
	if _, ok := f.dirs[p]; ok {
		if len(f.children(p)) > 0 {
			return fmt.Errorf("remove %q: directory not empty", p)
		}
		delete(f.dirs, p)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
}

func (f *MemoryFS) Rename(oldp, newp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	oldp, newp = clean(oldp), clean(newp)

	// file rename
	if data, ok := f.files[oldp]; ok {
		if !f.dirExists(path.Dir(newp)) {
			return &fs.PathError{Op: "rename", Path: newp, Err: fs.ErrNotExist}
		}
		delete(f.files, oldp)
		f.files[newp] = data
		return nil
	}

	// dir rename moves everything below it
	if _, ok := f.dirs[oldp]; ok {
		prefix := oldp + "/"
		for dp := range f.dirs {
			if strings.HasPrefix(dp, prefix) {
				delete(f.dirs, dp)
				f.dirs[newp+"/"+strings.TrimPrefix(dp, prefix)] = struct{}{}
			}
		}
		for fp, data := range f.files {
			if strings.HasPrefix(fp, prefix) {
				delete(f.files, fp)
				f.files[newp+"/"+strings.TrimPrefix(fp, prefix)] = data
			}
		}
		delete(f.dirs, oldp)
		f.dirs[newp] = struct{}{}
		return nil
	}

	return &fs.PathError{Op: "rename", Path: oldp, Err: fs.ErrNotExist}
}

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p = clean(p)
	if data, ok := f.files[p]; ok {
		return &fakeInfo{name: path.Base(p), size: int64(len(data)), dir: false}, nil
	}
	if _, ok := f.dirs[p]; ok {
		return &fakeInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// children returns the direct entries of dir p. Caller holds the lock.
func (f *MemoryFS) children(p string) []os.DirEntry {
	prefix := p + "/"
	switch p {
	case ".":
		prefix = ""
	case "/":
		prefix = "/"
	}

	seen := map[string]bool{}
	var out []os.DirEntry

	collect := func(full string, dir bool) {
		if !strings.HasPrefix(full, prefix) || full == p {
			return
		}
		rest := strings.TrimPrefix(full, prefix)
		if rest == "" || rest == "." || (prefix == "" && strings.HasPrefix(rest, "/")) {
			return
		}
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, fakeDirEntry{name: name, isDir: dir || nested})
	}

	for dp := range f.dirs {
		collect(dp, true)
	}
	for fp := range f.files {
		collect(fp, false)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ReadDir returns the entries of a directory sorted by name, like os.ReadDir.
func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}
	return f.children(p), nil
}

// CreateTempFile reserves a unique name in dir. The content becomes visible
// when the returned writer is closed.
func (f *MemoryFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirExists(dir) {
		return nil, "", &fs.PathError{Op: "createtemp", Path: dir, Err: fs.ErrNotExist}
	}

	f.seq++
	name := strings.Replace(pattern, "*", fmt.Sprintf("%d", f.seq), 1)
	if name == pattern {
		name = fmt.Sprintf("%s%d", pattern, f.seq)
	}
	tmpName := clean(path.Join(clean(dir), name))
	f.files[tmpName] = nil

	buf := &bytes.Buffer{}
	wc := &memWriteCloser{
		buf: buf,
		onClose: func() {
			f.mu.Lock()
			f.files[tmpName] = append([]byte(nil), buf.Bytes()...)
			f.mu.Unlock()
		},
	}
	return wc, tmpName, nil
}

type memWriteCloser struct {
	buf     *bytes.Buffer
	onClose func()
}

func (m *memWriteCloser) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *memWriteCloser) Close() error {
	if m.onClose != nil {
		m.onClose()
		m.onClose = nil
	}
	return nil
}

func (f *MemoryFS) IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

func (f *MemoryFS) IsDir(p string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirExists(p)
}

func (f *MemoryFS) Exists(p string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p = clean(p)
	_, f1 := f.files[p]
	_, d1 := f.dirs[p]
	return f1 || d1
}

// Helpers

type fakeInfo struct {
	name string
	size int64
	dir  bool
}

func (f *fakeInfo) Name() string { return f.name }
func (f *fakeInfo) Size() int64  { return f.size }
func (f *fakeInfo) Mode() fs.FileMode {
	if f.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (f *fakeInfo) ModTime() time.Time { return time.Time{} }
func (f *fakeInfo) IsDir() bool        { return f.dir }
func (f *fakeInfo) Sys() any           { return nil }

type fakeDirEntry struct {
	name  string
	isDir bool
}

func (d fakeDirEntry) Name() string { return d.name }
func (d fakeDirEntry) IsDir() bool  { return d.isDir }
func (d fakeDirEntry) Type() fs.FileMode {
	if d.isDir {
		return fs.ModeDir
	}
	return 0
}
func (d fakeDirEntry) Info() (os.FileInfo, error) { return &fakeInfo{name: d.name, dir: d.isDir}, nil }
