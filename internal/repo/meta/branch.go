package meta

import (
	"fmt"
	"sort"
	"strings"

	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
)

// Branch is a named pointer to a commit.
type Branch struct {
	Name string
	Tip  string
}

// ValidateBranchName rejects names that cannot be stored as a branch file.
func ValidateBranchName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return lvcerrors.Wrap(lvcerrors.ErrInvalidOperation, "branch name is empty")
	case name == "." || name == "..":
		return lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "invalid branch name %q", name)
	case strings.HasPrefix(name, "-"):
		return lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "branch name %q starts with '-'", name)
	case strings.ContainsAny(name, "/\\ \t\n"):
		return lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "branch name %q contains a separator or space", name)
	case fs.IsTemp(name):
		return lvcerrors.Wrapf(lvcerrors.ErrInvalidOperation, "branch name %q is reserved", name)
	}
	return nil
}

// ListBranches returns all branches sorted by name.
func (mc *MetaContext) ListBranches() ([]Branch, error) {
	dirEntries, err := mc.FS.ReadDir(mc.Config.BranchesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read branches directory %q: %w", mc.Config.BranchesDir(), err)
	}
	branches := make([]Branch, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() || fs.IsTemp(e.Name()) {
			continue
		}
		tip, err := mc.GetBranchTip(e.Name())
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Name: e.Name(), Tip: tip})
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// BranchExists checks for branch existence.
func (mc *MetaContext) BranchExists(name string) bool {
	if ValidateBranchName(name) != nil {
		return false
	}
	return mc.FS.Exists(mc.Config.BranchFile(name))
}

// GetBranchTip returns the commit id branch name points at.
func (mc *MetaContext) GetBranchTip(name string) (string, error) {
	if ValidateBranchName(name) != nil {
		return "", lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %q", name)
	}
	data, err := mc.FS.ReadFile(mc.Config.BranchFile(name))
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return "", lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %q", name)
		}
		return "", fmt.Errorf("failed to read branch %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetBranchTip moves branch name to commit id, creating the branch if needed.
func (mc *MetaContext) SetBranchTip(name, id string) error {
	if err := ValidateBranchName(name); err != nil {
		return err
	}
	if err := fs.WriteFileAtomic(mc.FS, mc.Config.BranchFile(name), []byte(id)); err != nil {
		return fmt.Errorf("failed to set tip of branch %q: %w", name, err)
	}
	return nil
}

// CreateBranch creates branch name pointing at commit id.
func (mc *MetaContext) CreateBranch(name, id string) (Branch, error) {
	if err := ValidateBranchName(name); err != nil {
		return Branch{}, err
	}
	if mc.BranchExists(name) {
		return Branch{}, lvcerrors.Wrapf(lvcerrors.ErrAlreadyExists, "branch %q", name)
	}
	if err := mc.SetBranchTip(name, id); err != nil {
		return Branch{}, err
	}
	return Branch{Name: name, Tip: id}, nil
}

// DeleteBranch removes the branch pointer. Commits are left untouched.
func (mc *MetaContext) DeleteBranch(name string) error {
	if !mc.BranchExists(name) {
		return lvcerrors.Wrapf(lvcerrors.ErrNoSuchBranch, "branch %q", name)
	}
	if err := mc.FS.Remove(mc.Config.BranchFile(name)); err != nil {
		return fmt.Errorf("failed to delete branch %q: %w", name, err)
	}
	return nil
}
