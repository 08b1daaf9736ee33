package repo

import (
	"fmt"

	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/repo/merge"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/stage"
)

// Outcome says what a merge did.
type Outcome int

const (
	Merged Outcome = iota
	FastForwarded
	AlreadyAncestor
)

func (o Outcome) String() string {
	switch o {
	case Merged:
		return "merged"
	case FastForwarded:
		return "fast-forwarded"
	case AlreadyAncestor:
		return "already-ancestor"
	default:
		return "unknown"
	}
}

// MergeResult describes a completed merge.
type MergeResult struct {
	Outcome Outcome
	Split   string

	// Commit is the new two-parent commit for a Merged outcome.
	Commit *meta.Commit

	// Conflicts lists paths written with conflict markers, sorted.
	Conflicts []string
}

// Merge merges branch into the current branch.
func (r *Repository) Merge(branch string) (*MergeResult, error) {
	st, err := r.load()
	if err != nil {
		return nil, err
	}
	if !st.stage.IsEmpty() {
		return nil, lvcerrors.ErrUncommittedChanges
	}
	if !r.Meta.BranchExists(branch) {
		return nil, lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %s", branch)
	}
	if branch == st.branch {
		return nil, lvcerrors.ErrSelfMerge
	}

	givenTip, err := r.Meta.GetBranchTip(branch)
	if err != nil {
		return nil, err
	}
	given, err := r.Meta.GetCommit(givenTip)
	if err != nil {
		return nil, err
	}
	if err := r.guardUntracked(st, given); err != nil {
		return nil, err
	}

	splitID, err := merge.SplitPoint(r.Meta, st.head.ID, givenTip)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("merge", "current", st.head.ID, "given", givenTip, "split", splitID)

	switch splitID {
	case givenTip:
		return &MergeResult{Outcome: AlreadyAncestor, Split: splitID}, nil

	case st.head.ID:
		if err := r.switchTo(st, given); err != nil {
			return nil, err
		}
		if err := r.Meta.SetBranchTip(st.branch, givenTip); err != nil {
			return nil, err
		}
		st.stage.Clear()
		if err := r.saveStage(st.stage); err != nil {
			return nil, err
		}
		return &MergeResult{Outcome: FastForwarded, Split: splitID}, nil
	}

	split, err := r.Meta.GetCommit(splitID)
	if err != nil {
		return nil, err
	}

	plan := merge.Plan(split, st.head, given)
	area, writes, err := r.applyPlan(plan)
	if err != nil {
		return nil, err
	}
	if area.IsEmpty() {
		return nil, lvcerrors.ErrNothingStaged
	}

	for _, a := range plan {
		if a.Kind == merge.Remove {
			if err := r.Work.Remove(a.Path); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.Work.Write(a.Path, writes[a.Path]); err != nil {
			return nil, err
		}
	}

	msg := fmt.Sprintf("Merged %s into %s.", branch, st.branch)
	c := meta.NewCommit(msg, r.Now(), []string{st.head.ID, givenTip}, area.Apply(st.head.Tracked))
	st.stage = area
	if err := r.record(st, c); err != nil {
		return nil, err
	}

	return &MergeResult{
		Outcome:   Merged,
		Split:     splitID,
		Commit:    c,
		Conflicts: merge.Conflicts(plan),
	}, nil
}

// applyPlan stages every action of plan into a fresh area and returns the
// bytes to write per path. Conflict contents are stored as new blobs.
func (r *Repository) applyPlan(plan []merge.Action) (*stage.Area, map[string][]byte, error) {
	area := stage.New()
	writes := map[string][]byte{}

	for _, a := range plan {
		switch a.Kind {
		case merge.TakeGiven:
			data, err := r.Blobs.Get(a.Given)
			if err != nil {
				return nil, nil, lvcerrors.Wrapf(err, "blob %s of %s", a.Given, a.Path)
			}
			area.Stage(a.Path, a.Given)
			writes[a.Path] = data

		case merge.Remove:
			area.MarkRemoved(a.Path)

		case merge.Conflict:
			cur, err := r.blobOrNil(a.Current)
			if err != nil {
				return nil, nil, err
			}
			giv, err := r.blobOrNil(a.Given)
			if err != nil {
				return nil, nil, err
			}

			content := merge.ConflictContent(cur, giv)
			id, err := r.Blobs.Put(content)
			if err != nil {
				return nil, nil, err
			}
			area.Stage(a.Path, id)
			writes[a.Path] = content
		}
	}
	return area, writes, nil
}

func (r *Repository) blobOrNil(id string) ([]byte, error) {
	if id == "" {
		return nil, nil
	}
	return r.Blobs.Get(id)
}
