package repo

import (
	"sort"

	"github.com/keshon/lvc/internal/repo/merge"
	"github.com/keshon/lvc/internal/repo/store/object"
	"github.com/keshon/lvc/internal/util"
)

// ObjectCheck is the verification result of one blob.
type ObjectCheck struct {
	ID      string
	Status  object.Status
	Paths   []string
	Commits []string
}

type blobRefs struct {
	paths   map[string]struct{}
	commits map[string]struct{}
}

// referencedBlobs maps each blob id to the paths and commits referring to
// it. If allHistory is true every stored commit is scanned, otherwise only
// commits reachable from branch tips.
func (r *Repository) referencedBlobs(allHistory bool) (map[string]*blobRefs, error) {
	var commitIDs []string
	if allHistory {
		ids, err := r.Meta.ListCommitIDs()
		if err != nil {
			return nil, err
		}
		commitIDs = ids
	} else {
		branches, err := r.Meta.ListBranches()
		if err != nil {
			return nil, err
		}
		reach := map[string]bool{}
		for _, b := range branches {
			anc, err := merge.Ancestors(r.Meta, b.Tip)
			if err != nil {
				return nil, err
			}
			for id := range anc {
				reach[id] = true
			}
		}
		commitIDs = util.SortedKeys(reach)
	}

	refs := map[string]*blobRefs{}
	for _, id := range commitIDs {
		c, err := r.Meta.GetCommit(id)
		if err != nil {
			return nil, err
		}
		for p, blob := range c.Tracked {
			ref, ok := refs[blob]
			if !ok {
				ref = &blobRefs{paths: map[string]struct{}{}, commits: map[string]struct{}{}}
				refs[blob] = ref
			}
			ref.paths[p] = struct{}{}
			ref.commits[id] = struct{}{}
		}
	}
	return refs, nil
}

// CountObjects returns how many blobs Verify would check.
func (r *Repository) CountObjects(allHistory bool) (int, error) {
	refs, err := r.referencedBlobs(allHistory)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}

// VerifyStream checks referenced blobs concurrently and streams results
// as they complete. The error channel yields at most one error.
func (r *Repository) VerifyStream(allHistory bool) (<-chan ObjectCheck, <-chan error) {
	out := make(chan ObjectCheck, 128)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		refs, err := r.referencedBlobs(allHistory)
		if err != nil {
			errCh <- err
			return
		}

		ids := util.SortedKeys(refs)
		err = util.Parallel(ids, util.WorkerCount(), func(id string) error {
			ref := refs[id]
			out <- ObjectCheck{
				ID:      id,
				Status:  r.Blobs.Verify(id),
				Paths:   util.SortedKeys(ref.paths),
				Commits: util.SortedKeys(ref.commits),
			}
			return nil
		})
		if err != nil {
			errCh <- err
		}
	}()

	return out, errCh
}

// Verify checks every referenced blob exists and re-hashes to its id.
// Results are sorted by id.
func (r *Repository) Verify(allHistory bool) ([]ObjectCheck, error) {
	out, errCh := r.VerifyStream(allHistory)

	var checks []ObjectCheck
	for c := range out {
		checks = append(checks, c)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	sort.Slice(checks, func(i, j int) bool { return checks[i].ID < checks[j].ID })
	r.Logger.Debug("verified objects", "count", len(checks), "all", allHistory)
	return checks, nil
}

// Damaged filters checks down to blobs that are missing or corrupt.
func Damaged(checks []ObjectCheck) []ObjectCheck {
	var bad []ObjectCheck
	for _, c := range checks {
		if c.Status != object.OK {
			bad = append(bad, c)
		}
	}
	return bad
}
