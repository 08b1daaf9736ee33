package repo

import (
	"sort"
)

// Change states reported for files modified but not staged.
const (
	Modified = "modified"
	Deleted  = "deleted"
)

// FileChange is a working-tree file whose content differs from what the
// next commit would record.
type FileChange struct {
	Path  string
	State string
}

// Status is a snapshot of the repository as seen from the working tree.
type Status struct {
	Branch    string
	Branches  []string
	Staged    []string
	Removed   []string
	Modified  []FileChange
	Untracked []string
}

// Status compares the working tree against the head commit and the
// staging area.
func (r *Repository) Status() (*Status, error) {
	st, err := r.load()
	if err != nil {
		return nil, err
	}

	branches, err := r.Meta.ListBranches()
	if err != nil {
		return nil, err
	}

	s := &Status{
		Branch:  st.branch,
		Staged:  st.stage.StagedPaths(),
		Removed: st.stage.RemovedPaths(),
	}
	for _, b := range branches {
		s.Branches = append(s.Branches, b.Name)
	}

	// candidates for modifications are everything the next commit would track
	candidates := map[string]string{}
	for p, id := range st.head.Tracked {
		if !st.stage.IsRemoved(p) {
			candidates[p] = id
		}
	}
	for _, p := range st.stage.StagedPaths() {
		id, _ := st.stage.BlobOf(p)
		candidates[p] = id
	}

	for p, id := range candidates {
		data, err := r.Work.Read(p)
		if err != nil {
			if !r.Work.Exists(p) {
				s.Modified = append(s.Modified, FileChange{Path: p, State: Deleted})
				continue
			}
			return nil, err
		}
		if r.Blobs.Sum(data) != id {
			s.Modified = append(s.Modified, FileChange{Path: p, State: Modified})
		}
	}
	sort.Slice(s.Modified, func(i, j int) bool { return s.Modified[i].Path < s.Modified[j].Path })

	s.Untracked, err = r.untracked(st)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// untracked lists working files the repository does not know about: those
// neither staged nor tracked at HEAD, and those staged for removal but
// present again.
func (r *Repository) untracked(st *state) ([]string, error) {
	files, err := r.Work.List()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, p := range files {
		if r.isUntracked(st, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Repository) isUntracked(st *state, p string) bool {
	if st.stage.IsRemoved(p) {
		return true
	}
	return !st.stage.IsStaged(p) && !st.head.IsTracked(p)
}
