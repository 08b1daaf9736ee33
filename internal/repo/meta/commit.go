package meta

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	lvcerrors "github.com/keshon/lvc/internal/errors"
)

// RootMessage is the message of the commit every repository starts from.
const RootMessage = "initial commit"

// Commit is an immutable snapshot. ID is the fingerprint of Encode().
type Commit struct {
	ID        string            `json:"-"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Parents   []string          `json:"parents"`
	Tracked   map[string]string `json:"tracked"`
}

// NewCommit builds a commit with its timestamp normalized to UTC seconds.
// The tracked map is copied.
func NewCommit(message string, at time.Time, parents []string, tracked map[string]string) *Commit {
	c := &Commit{
		Message:   message,
		Timestamp: at.UTC().Truncate(time.Second).Format(time.RFC3339),
		Parents:   append([]string{}, parents...),
		Tracked:   make(map[string]string, len(tracked)),
	}
	for p, id := range tracked {
		c.Tracked[p] = id
	}
	return c
}

// RootCommit returns the parentless commit created by init.
func RootCommit() *Commit {
	return NewCommit(RootMessage, time.Unix(0, 0), nil, nil)
}

// Encode returns the canonical serialization the commit id is computed over.
// encoding/json writes struct fields in declaration order and map keys sorted.
func (c *Commit) Encode() []byte {
	v := *c
	if v.Parents == nil {
		v.Parents = []string{}
	}
	if v.Tracked == nil {
		v.Tracked = map[string]string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		// only strings, slices of strings and string maps
		panic(fmt.Sprintf("encode commit: %v", err))
	}
	return data
}

// IsTracked reports whether the commit snapshot contains path.
func (c *Commit) IsTracked(path string) bool {
	_, ok := c.Tracked[path]
	return ok
}

// BlobOf returns the blob id recorded for path.
func (c *Commit) BlobOf(path string) (string, bool) {
	id, ok := c.Tracked[path]
	return id, ok
}

// Paths returns the tracked paths in sorted order.
func (c *Commit) Paths() []string {
	paths := make([]string, 0, len(c.Tracked))
	for p := range c.Tracked {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FirstParent returns the parent on the branch the commit was made on, or ""
// for the root commit.
func (c *Commit) FirstParent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

func (c *Commit) IsMerge() bool { return len(c.Parents) > 1 }

// Time parses the stored timestamp.
func (c *Commit) Time() time.Time {
	t, err := time.Parse(time.RFC3339, c.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SaveCommit stores c and sets its ID.
func (mc *MetaContext) SaveCommit(c *Commit) (string, error) {
	id, err := mc.Commits.Put(c.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to write commit: %w", err)
	}
	c.ID = id
	return id, nil
}

// CommitID returns the id c would be stored under without storing it.
func (mc *MetaContext) CommitID(c *Commit) string {
	return mc.Commits.Sum(c.Encode())
}

// GetCommit reads a commit by its full id.
func (mc *MetaContext) GetCommit(id string) (*Commit, error) {
	data, err := mc.Commits.Get(id)
	if err != nil {
		if lvcerrors.Is(err, lvcerrors.ErrNotFound) {
			return nil, lvcerrors.Wrapf(lvcerrors.ErrNoSuchCommit, "commit %s", id)
		}
		return nil, err
	}

	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode commit %q: %w", id, err)
	}
	c.ID = id
	if c.Tracked == nil {
		c.Tracked = map[string]string{}
	}
	return &c, nil
}

// ResolveCommit looks up a commit by full id or unique id prefix.
func (mc *MetaContext) ResolveCommit(ref string) (*Commit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, lvcerrors.Wrap(lvcerrors.ErrNoSuchCommit, "empty commit id")
	}
	if mc.Commits.Has(ref) {
		return mc.GetCommit(ref)
	}

	ids, err := mc.ListCommitIDs()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return nil, lvcerrors.Wrapf(lvcerrors.ErrNoSuchCommit, "commit %s", ref)
	case 1:
		return mc.GetCommit(matches[0])
	default:
		return nil, lvcerrors.Wrapf(lvcerrors.ErrAmbiguousCommit, "prefix %s matches %d commits", ref, len(matches))
	}
}

// ListCommitIDs returns every stored commit id in storage order.
func (mc *MetaContext) ListCommitIDs() ([]string, error) {
	return mc.Commits.List()
}

// FirstParentChain returns the commits from id back to the root following
// first parents only.
func (mc *MetaContext) FirstParentChain(id string) ([]*Commit, error) {
	var chain []*Commit
	seen := map[string]bool{}
	for id != "" {
		if seen[id] {
			return nil, fmt.Errorf("cycle in commit history at %s", id)
		}
		seen[id] = true

		c, err := mc.GetCommit(id)
		if err != nil {
			return nil, err
		}
		chain = append(chain, c)
		id = c.FirstParent()
	}
	return chain, nil
}
