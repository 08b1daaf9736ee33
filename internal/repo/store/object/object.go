// Package object is a write-once byte store keyed by content fingerprint.
// It backs both file blobs and serialized commits.
package object

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/hash"
)

// Status is the outcome of checking a stored object.
type Status int

const (
	OK Status = iota
	Missing
	Damaged
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Damaged:
		return "damaged"
	}
	return "unknown"
}

// Store keeps objects as files named by their fingerprint under Dir.
type Store struct {
	Dir    string
	FS     fs.FS
	Hasher hash.Hasher
}

// NewStore returns a store rooted at dir.
func NewStore(fsys fs.FS, dir string, h hash.Hasher) *Store {
	return &Store{Dir: dir, FS: fsys, Hasher: h}
}

// Sum returns the fingerprint data would be stored under.
func (s *Store) Sum(data []byte) string {
	return s.Hasher.Sum(data)
}

// Put stores data and returns its fingerprint. Storing existing content is a no-op.
func (s *Store) Put(data []byte) (string, error) {
	id := s.Sum(data)
	if err := s.PutAs(id, data); err != nil {
		return "", err
	}
	return id, nil
}

// PutAs stores data under a fingerprint the caller already computed.
func (s *Store) PutAs(id string, data []byte) error {
	path := s.path(id)
	if s.FS.Exists(path) {
		return nil
	}
	if err := fs.WriteFileAtomic(s.FS, path, data); err != nil {
		return fmt.Errorf("write object %s: %w", id, err)
	}
	return nil
}

// Get returns the bytes stored under id.
func (s *Store) Get(id string) ([]byte, error) {
	if !validID(id) {
		return nil, lvcerrors.Wrapf(lvcerrors.ErrNotFound, "object %q", id)
	}
	data, err := s.FS.ReadFile(s.path(id))
	if err != nil {
		if s.FS.IsNotExist(err) {
			return nil, lvcerrors.Wrapf(lvcerrors.ErrNotFound, "object %s", id)
		}
		return nil, fmt.Errorf("read object %s: %w", id, err)
	}
	return data, nil
}

// Has reports whether id is stored.
func (s *Store) Has(id string) bool {
	return validID(id) && s.FS.Exists(s.path(id))
}

// List returns every stored id in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := s.FS.ReadDir(s.Dir)
	if err != nil {
		if s.FS.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read object directory %q: %w", s.Dir, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || fs.IsTemp(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// Verify re-reads id and checks that its content still hashes to id.
func (s *Store) Verify(id string) Status {
	data, err := s.FS.ReadFile(s.path(id))
	if err != nil {
		if s.FS.IsNotExist(err) {
			return Missing
		}
		return Damaged
	}
	if s.Sum(data) != id {
		return Damaged
	}
	return OK
}

// validID rejects names that would resolve outside the store directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func (s *Store) path(id string) string {
	return filepath.Join(s.Dir, id)
}
