package repo

import (
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/repo/meta"
)

// CheckoutFile restores path from the commit ref resolves to, or from the
// head commit when ref is empty. The staging area is left alone.
func (r *Repository) CheckoutFile(path, ref string) error {
	p, err := r.Work.Clean(path)
	if err != nil {
		return err
	}

	var c *meta.Commit
	if ref == "" {
		if _, c, err = r.Head(); err != nil {
			return err
		}
	} else if c, err = r.Meta.ResolveCommit(ref); err != nil {
		return err
	}

	id, ok := c.BlobOf(p)
	if !ok {
		return lvcerrors.ErrFileNotInCommit
	}
	data, err := r.Blobs.Get(id)
	if err != nil {
		return lvcerrors.Wrapf(err, "blob %s of %s", id, p)
	}

	r.Logger.Debug("checkout file", "path", p, "commit", c.ID)
	return r.Work.Write(p, data)
}

// CheckoutBranch switches HEAD to name and rewrites the working tree to
// its tip.
func (r *Repository) CheckoutBranch(name string) error {
	st, err := r.load()
	if err != nil {
		return err
	}
	if !r.Meta.BranchExists(name) {
		return lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %s", name)
	}
	if name == st.branch {
		return lvcerrors.ErrSameBranch
	}

	tip, err := r.Meta.GetBranchTip(name)
	if err != nil {
		return err
	}
	target, err := r.Meta.GetCommit(tip)
	if err != nil {
		return err
	}

	if err := r.switchTo(st, target); err != nil {
		return err
	}
	if _, err := r.Meta.SetHeadRef(name); err != nil {
		return err
	}

	st.stage.Clear()
	r.Logger.Debug("checkout branch", "from", st.branch, "to", name, "commit", tip)
	return r.saveStage(st.stage)
}

// Reset moves the current branch to the commit ref resolves to and
// rewrites the working tree to match it.
func (r *Repository) Reset(ref string) error {
	st, err := r.load()
	if err != nil {
		return err
	}
	target, err := r.Meta.ResolveCommit(ref)
	if err != nil {
		return err
	}

	if err := r.switchTo(st, target); err != nil {
		return err
	}
	if err := r.Meta.SetBranchTip(st.branch, target.ID); err != nil {
		return err
	}

	st.stage.Clear()
	r.Logger.Debug("reset", "branch", st.branch, "commit", target.ID)
	return r.saveStage(st.stage)
}

// guardUntracked fails when writing target's files would clobber a working
// file the repository does not know about.
func (r *Repository) guardUntracked(st *state, target *meta.Commit) error {
	for _, p := range target.Paths() {
		if !r.Work.Exists(p) || !r.isUntracked(st, p) {
			continue
		}
		data, err := r.Work.Read(p)
		if err != nil {
			return err
		}
		if !r.ContentEquals(target, p, data) {
			return lvcerrors.Wrapf(lvcerrors.ErrWouldOverwriteUntracked, "%s", p)
		}
	}
	return nil
}

// switchTo replaces the working tree contents tracked by the head commit
// with those tracked by target. Nothing is written until every blob of
// target has been read.
func (r *Repository) switchTo(st *state, target *meta.Commit) error {
	if err := r.guardUntracked(st, target); err != nil {
		return err
	}

	contents := make(map[string][]byte, len(target.Tracked))
	for _, p := range target.Paths() {
		data, err := r.Blobs.Get(target.Tracked[p])
		if err != nil {
			return lvcerrors.Wrapf(err, "blob %s of %s", target.Tracked[p], p)
		}
		contents[p] = data
	}

	for _, p := range target.Paths() {
		if cur, err := r.Work.Read(p); err == nil && r.Blobs.Sum(cur) == target.Tracked[p] {
			continue
		}
		if err := r.Work.Write(p, contents[p]); err != nil {
			return err
		}
	}
	for _, p := range st.head.Paths() {
		if target.IsTracked(p) {
			continue
		}
		if err := r.Work.Remove(p); err != nil {
			return err
		}
	}
	return nil
}

// Branch creates a branch named name at the head commit. HEAD stays put.
func (r *Repository) Branch(name string) error {
	if err := meta.ValidateBranchName(name); err != nil {
		return err
	}
	_, head, err := r.Head()
	if err != nil {
		return err
	}
	if _, err := r.Meta.CreateBranch(name, head.ID); err != nil {
		return err
	}
	r.Logger.Debug("created branch", "name", name, "commit", head.ID)
	return nil
}

// DeleteBranch removes the branch pointer name. Commits are kept.
func (r *Repository) DeleteBranch(name string) error {
	current, err := r.Meta.CurrentBranch()
	if err != nil {
		return err
	}
	if !r.Meta.BranchExists(name) {
		return lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %s", name)
	}
	if name == current {
		return lvcerrors.ErrCannotDeleteCurrent
	}
	if err := r.Meta.DeleteBranch(name); err != nil {
		return err
	}
	r.Logger.Debug("deleted branch", "name", name)
	return nil
}
