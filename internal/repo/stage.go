package repo

import (
	"strings"

	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Add stages the working copy of path. Staging a file identical to the
// head version drops any pending addition or removal instead.
func (r *Repository) Add(path string) error {
	p, err := r.Work.Clean(path)
	if err != nil {
		return err
	}

	st, err := r.load()
	if err != nil {
		return err
	}

	data, err := r.Work.Read(p)
	if err != nil {
		return lvcerrors.Wrapf(err, "add %s", p)
	}
	id := r.Blobs.Sum(data)

	if headID, ok := st.head.BlobOf(p); ok && headID == id {
		st.stage.Unstage(p)
		st.stage.Unremove(p)
		r.Logger.Debug("add: unchanged from head", "path", p)
		return r.saveStage(st.stage)
	}

	if err := r.Blobs.PutAs(id, data); err != nil {
		return err
	}
	st.stage.Stage(p, id)
	r.Logger.Debug("staged", "path", p, "blob", id)
	return r.saveStage(st.stage)
}

// Remove unstages a pending addition of path, or schedules a tracked path
// for removal and deletes it from the working tree.
func (r *Repository) Remove(path string) error {
	p, err := r.Work.Clean(path)
	if err != nil {
		return err
	}

	st, err := r.load()
	if err != nil {
		return err
	}

	switch {
	case st.stage.IsStaged(p):
		st.stage.Unstage(p)
		r.Logger.Debug("unstaged", "path", p)
		return r.saveStage(st.stage)

	case st.head.IsTracked(p):
		if err := r.Work.Remove(p); err != nil {
			return err
		}
		st.stage.MarkRemoved(p)
		r.Logger.Debug("staged for removal", "path", p)
		return r.saveStage(st.stage)

	default:
		return lvcerrors.ErrNothingToRemove
	}
}

// Commit records the staged changes on top of the head commit and advances
// the current branch.
func (r *Repository) Commit(message string) (*meta.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, lvcerrors.ErrEmptyMessage
	}

	st, err := r.load()
	if err != nil {
		return nil, err
	}
	if st.stage.IsEmpty() {
		return nil, lvcerrors.ErrNothingStaged
	}

	c := meta.NewCommit(message, r.Now(), []string{st.head.ID}, st.stage.Apply(st.head.Tracked))
	if err := r.record(st, c); err != nil {
		return nil, err
	}
	return c, nil
}

// record stores c, moves the current branch onto it and empties the
// staging area.
func (r *Repository) record(st *state, c *meta.Commit) error {
	id, err := r.Meta.SaveCommit(c)
	if err != nil {
		return err
	}
	if err := r.Meta.SetBranchTip(st.branch, id); err != nil {
		return err
	}

	st.stage.Clear()
	if err := r.saveStage(st.stage); err != nil {
		return err
	}

	r.Logger.Debug("committed", "id", id, "branch", st.branch, "parents", c.Parents, "files", len(c.Tracked))
	return nil
}
