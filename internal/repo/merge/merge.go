// Package merge computes three-way merges between commit snapshots.
package merge

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/keshon/lvc/internal/repo/meta"
)

// CommitSource loads commits by id.
type CommitSource interface {
	GetCommit(id string) (*meta.Commit, error)
}

// Ancestors returns id and every commit reachable from it through any parent.
func Ancestors(src CommitSource, id string) (map[string]bool, error) {
	seen := map[string]bool{}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == "" || seen[cur] {
			continue
		}
		seen[cur] = true

		c, err := src.GetCommit(cur)
		if err != nil {
			return nil, err
		}
		queue = append(queue, c.Parents...)
	}
	return seen, nil
}

// SplitPoint returns the merge base of two tips: the first commit met while
// walking the given tip's history breadth-first that is also an ancestor of
// the current tip. In criss-cross histories this is the earliest-found common
// ancestor and not necessarily the lowest one.
func SplitPoint(src CommitSource, currentTip, givenTip string) (string, error) {
	ours, err := Ancestors(src, currentTip)
	if err != nil {
		return "", fmt.Errorf("walk history of %s: %w", currentTip, err)
	}

	visited := map[string]bool{}
	queue := []string{givenTip}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == "" || visited[cur] {
			continue
		}
		visited[cur] = true
		if ours[cur] {
			return cur, nil
		}

		c, err := src.GetCommit(cur)
		if err != nil {
			return "", fmt.Errorf("walk history of %s: %w", givenTip, err)
		}
		queue = append(queue, c.Parents...)
	}

	return "", fmt.Errorf("no common ancestor between %s and %s", currentTip, givenTip)
}

// Change describes how one side altered a path relative to the split point.
type Change int

const (
	Absent     Change = iota // tracked neither at split nor on this side
	Unmodified               // same blob as at split
	Changed                  // tracked at split, different blob now
	Added                    // not tracked at split, tracked now
	Removed                  // tracked at split, gone now
)

func (c Change) String() string {
	switch c {
	case Absent:
		return "absent"
	case Unmodified:
		return "unmodified"
	case Changed:
		return "changed"
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Classify returns how side changed path since split.
func Classify(split, side *meta.Commit, path string) Change {
	base, inSplit := split.BlobOf(path)
	now, inSide := side.BlobOf(path)

	switch {
	case !inSplit && !inSide:
		return Absent
	case !inSplit:
		return Added
	case !inSide:
		return Removed
	case base == now:
		return Unmodified
	default:
		return Changed
	}
}

// Kind is what the merge does to a path.
type Kind int

const (
	TakeGiven Kind = iota // check out and stage the given side's blob
	Remove                // untrack and delete the file
	Conflict              // write conflict markers and stage the result
)

func (k Kind) String() string {
	switch k {
	case TakeGiven:
		return "take-given"
	case Remove:
		return "remove"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

// Action is a single step of a merge plan. Current and Given hold the blob
// id on each side, empty when the side does not track the path.
type Action struct {
	Path    string
	Kind    Kind
	Current string
	Given   string
}

// Plan decides, path by path, what merging given into current does.
// Paths that keep the current side's version produce no action.
// Actions are sorted by path.
func Plan(split, current, given *meta.Commit) []Action {
	paths := map[string]struct{}{}
	for _, c := range []*meta.Commit{split, current, given} {
		for p := range c.Tracked {
			paths[p] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	var actions []Action
	for _, p := range sorted {
		cur := Classify(split, current, p)
		giv := Classify(split, given, p)
		cb, _ := current.BlobOf(p)
		gb, _ := given.BlobOf(p)

		a := Action{Path: p, Current: cb, Given: gb}
		switch {
		case isConflict(cur, giv, cb, gb):
			a.Kind = Conflict
		case giv == Changed && cur == Unmodified:
			a.Kind = TakeGiven
		case giv == Added && cur == Absent:
			a.Kind = TakeGiven
		case giv == Removed && cur == Unmodified:
			a.Kind = Remove
		default:
			continue
		}
		actions = append(actions, a)
	}
	return actions
}

func isConflict(cur, giv Change, cb, gb string) bool {
	switch {
	case cur == Changed && giv == Changed:
		return cb != gb
	case cur == Added && giv == Added:
		return cb != gb
	case cur == Changed && giv == Removed, cur == Removed && giv == Changed:
		return true
	}
	return false
}

// Conflicts returns the paths of the conflict actions in plan.
func Conflicts(plan []Action) []string {
	var out []string
	for _, a := range plan {
		if a.Kind == Conflict {
			out = append(out, a.Path)
		}
	}
	return out
}

// ConflictContent renders both versions of a conflicting file between
// markers. A nil side stands for a file the side does not have. Non-empty
// content lacking a final newline gets one so that markers start a line.
func ConflictContent(current, given []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	writeSide(&buf, current)
	buf.WriteString("=======\n")
	writeSide(&buf, given)
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}

func writeSide(buf *bytes.Buffer, content []byte) {
	if len(content) == 0 {
		return
	}
	buf.Write(content)
	if content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
}
