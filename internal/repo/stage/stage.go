// Package stage holds the changes queued for the next commit.
package stage

import (
	"fmt"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/util"
)

// Area is the staging area. A path is never both staged and removed.
type Area struct {
	additions map[string]string
	removals  map[string]struct{}
}

// record is the on-disk form of an Area.
type record struct {
	Additions map[string]string `json:"additions"`
	Removals  []string          `json:"removals"`
}

// New returns an empty staging area.
func New() *Area {
	return &Area{
		additions: make(map[string]string),
		removals:  make(map[string]struct{}),
	}
}

// Load reads the staging area from path. A missing file is an empty area.
func Load(fsys fs.FS, path string) (*Area, error) {
	a := New()

	var rec record
	if err := util.ReadJSON(fsys, path, &rec); err != nil {
		if fsys.IsNotExist(err) {
			return a, nil
		}
		return nil, fmt.Errorf("failed to read staging area %q: %w", path, err)
	}

	for p, id := range rec.Additions {
		a.additions[p] = id
	}
	for _, p := range rec.Removals {
		if _, staged := a.additions[p]; staged {
			return nil, fmt.Errorf("corrupt staging area: %q is both staged and removed", p)
		}
		a.removals[p] = struct{}{}
	}
	return a, nil
}

// Save writes the staging area to path atomically.
func (a *Area) Save(fsys fs.FS, path string) error {
	rec := record{
		Additions: a.additions,
		Removals:  a.RemovedPaths(),
	}
	if err := util.WriteJSON(fsys, path, rec); err != nil {
		return fmt.Errorf("failed to write staging area %q: %w", path, err)
	}
	return nil
}

// Stage queues blob id as the next version of path.
func (a *Area) Stage(path, id string) {
	delete(a.removals, path)
	a.additions[path] = id
}

// Unstage drops a queued addition and reports whether there was one.
func (a *Area) Unstage(path string) bool {
	_, ok := a.additions[path]
	delete(a.additions, path)
	return ok
}

// MarkRemoved queues path to be untracked by the next commit.
func (a *Area) MarkRemoved(path string) {
	delete(a.additions, path)
	a.removals[path] = struct{}{}
}

// Unremove drops a queued removal.
func (a *Area) Unremove(path string) {
	delete(a.removals, path)
}

func (a *Area) IsStaged(path string) bool {
	_, ok := a.additions[path]
	return ok
}

func (a *Area) IsRemoved(path string) bool {
	_, ok := a.removals[path]
	return ok
}

// BlobOf returns the staged blob id for path.
func (a *Area) BlobOf(path string) (string, bool) {
	id, ok := a.additions[path]
	return id, ok
}

// StagedPaths returns the paths with queued additions, sorted.
func (a *Area) StagedPaths() []string {
	return util.SortedKeys(a.additions)
}

// RemovedPaths returns the paths queued for removal, sorted.
func (a *Area) RemovedPaths() []string {
	return util.SortedKeys(a.removals)
}

func (a *Area) IsEmpty() bool {
	return len(a.additions) == 0 && len(a.removals) == 0
}

// Clear drops every queued change.
func (a *Area) Clear() {
	a.additions = make(map[string]string)
	a.removals = make(map[string]struct{})
}

// Apply returns tracked overlaid with the queued additions and without the
// queued removals. tracked itself is not modified.
func (a *Area) Apply(tracked map[string]string) map[string]string {
	out := make(map[string]string, len(tracked)+len(a.additions))
	for p, id := range tracked {
		out[p] = id
	}
	for p, id := range a.additions {
		out[p] = id
	}
	for p := range a.removals {
		delete(out, p)
	}
	return out
}

// Len returns the number of queued changes.
func (a *Area) Len() int {
	return len(a.additions) + len(a.removals)
}
