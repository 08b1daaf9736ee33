package repo

import (
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Log returns the head commit and its first-parent ancestors, newest first.
func (r *Repository) Log() ([]*meta.Commit, error) {
	st, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.Meta.FirstParentChain(st.head.ID)
}

// GlobalLog returns every stored commit in storage order.
func (r *Repository) GlobalLog() ([]*meta.Commit, error) {
	ids, err := r.Meta.ListCommitIDs()
	if err != nil {
		return nil, err
	}

	commits := make([]*meta.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := r.Meta.GetCommit(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// Find returns the ids of all commits whose message is exactly message.
func (r *Repository) Find(message string) ([]string, error) {
	commits, err := r.GlobalLog()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range commits {
		if c.Message == message {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return nil, lvcerrors.ErrNoMatchingCommit
	}
	return ids, nil
}
