// Package worktree reads and writes the user's files next to the repository.
package worktree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/lvc/internal/config"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
)

// WorkTree is the directory tree a repository versions. All paths taken and
// returned are slash-separated and relative to Root.
type WorkTree struct {
	Root   string
	FS     fs.FS
	Ignore *Ignore

	skip map[string]bool
}

// New opens the working tree at root and loads its ignore file.
func New(fsys fs.FS, root string) (*WorkTree, error) {
	w := &WorkTree{Root: root, FS: fsys, skip: map[string]bool{}}

	data, err := fsys.ReadFile(filepath.Join(root, config.IgnoreFile))
	if err != nil && !fsys.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", config.IgnoreFile, err)
	}
	w.Ignore = NewIgnore(data)

	// never version the running binary when it lives inside the tree
	if exe, err := os.Executable(); err == nil {
		if rel, err := filepath.Rel(absOr(root), exe); err == nil && !strings.HasPrefix(rel, "..") {
			w.skip[filepath.ToSlash(rel)] = true
		}
	}
	return w, nil
}

func absOr(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}

// Clean normalizes a user-supplied path relative to Root. It rejects empty
// paths, paths leaving the tree and paths inside the repository directory.
func (w *WorkTree) Clean(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", lvcerrors.Wrap(lvcerrors.ErrNotFound, "empty path")
	}
	clean := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") || clean == "." {
		return "", lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "path %q is outside the working tree", p)
	}
	if clean == config.RepoDir || strings.HasPrefix(clean, config.RepoDir+"/") {
		return "", lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "path %q is inside the repository directory", p)
	}
	return clean, nil
}

func (w *WorkTree) abs(p string) string {
	return filepath.Join(w.Root, filepath.FromSlash(p))
}

// Read returns the content of a working file.
func (w *WorkTree) Read(p string) ([]byte, error) {
	data, err := w.FS.ReadFile(w.abs(p))
	if err != nil {
		if w.FS.IsNotExist(err) {
			return nil, lvcerrors.Wrapf(lvcerrors.ErrNotFound, "file %s", p)
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// Write replaces a working file, creating parent directories as needed.
func (w *WorkTree) Write(p string, data []byte) error {
	full := w.abs(p)
	if err := w.FS.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", p, err)
	}
	if err := w.FS.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}

// Remove deletes a working file if present and prunes directories it leaves empty.
func (w *WorkTree) Remove(p string) error {
	full := w.abs(p)
	if err := w.FS.Remove(full); err != nil && !w.FS.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", p, err)
	}

	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		entries, err := w.FS.ReadDir(w.abs(dir))
		if err != nil || len(entries) > 0 {
			break
		}
		if err := w.FS.Remove(w.abs(dir)); err != nil {
			break
		}
	}
	return nil
}

// Exists reports whether p is a regular file in the tree.
func (w *WorkTree) Exists(p string) bool {
	full := w.abs(p)
	return w.FS.Exists(full) && !w.FS.IsDir(full)
}

// List returns every non-ignored file in the tree, sorted.
func (w *WorkTree) List() ([]string, error) {
	var out []string
	stack := []string{"."}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := w.FS.ReadDir(w.abs(dir))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}

		for _, e := range entries {
			rel := path.Join(dir, e.Name())
			if w.Ignore.Match(rel) || w.skip[rel] || fs.IsTemp(e.Name()) {
				continue
			}
			if e.IsDir() {
				stack = append(stack, rel)
				continue
			}
			out = append(out, rel)
		}
	}

	sort.Strings(out)
	return out, nil
}
