package meta

import (
	"fmt"
	"strings"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
)

const headPrefix = "ref: "

// HeadRef is the content of HEAD without its "ref: " prefix, e.g. "branches/master".
type HeadRef string

func (h HeadRef) String() string { return string(h) }

// Branch returns the branch name HEAD refers to.
func (h HeadRef) Branch() string {
	return strings.TrimPrefix(string(h), config.BranchesDir+"/")
}

// GetHeadRef reads HEAD for this repository.
func (mc *MetaContext) GetHeadRef() (HeadRef, error) {
	data, err := mc.FS.ReadFile(mc.Config.HeadFile())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD %q: %w", mc.Config.HeadFile(), err)
	}

	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, headPrefix) {
		return "", fmt.Errorf("invalid HEAD content: %q", content)
	}

	ref := HeadRef(strings.TrimPrefix(content, headPrefix))
	if ref.Branch() == "" || ref.Branch() == ref.String() {
		return "", fmt.Errorf("invalid HEAD ref: %q", ref)
	}
	return ref, nil
}

// SetHeadRef points HEAD at branch name.
func (mc *MetaContext) SetHeadRef(name string) (HeadRef, error) {
	if err := ValidateBranchName(name); err != nil {
		return "", err
	}
	ref := HeadRef(config.BranchesDir + "/" + name)
	if err := fs.WriteFileAtomic(mc.FS, mc.Config.HeadFile(), []byte(headPrefix+ref.String())); err != nil {
		return "", fmt.Errorf("failed to write HEAD %q: %w", mc.Config.HeadFile(), err)
	}
	return ref, nil
}

// CurrentBranch returns the name of the branch HEAD refers to.
func (mc *MetaContext) CurrentBranch() (string, error) {
	ref, err := mc.GetHeadRef()
	if err != nil {
		return "", err
	}
	return ref.Branch(), nil
}

// HeadCommitID returns the tip of the current branch.
func (mc *MetaContext) HeadCommitID() (string, error) {
	name, err := mc.CurrentBranch()
	if err != nil {
		return "", err
	}
	return mc.GetBranchTip(name)
}

// HeadCommit returns the commit at the tip of the current branch.
func (mc *MetaContext) HeadCommit() (*Commit, error) {
	id, err := mc.HeadCommitID()
	if err != nil {
		return nil, err
	}
	return mc.GetCommit(id)
}
