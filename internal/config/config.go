package config

import (
	"path/filepath"
)

const (
	RepoDir     = ".lvc"
	CommitsDir  = "commits"
	BranchesDir = "branches"
	ObjectsDir  = "objects"
	HeadFile    = "HEAD"
	IndexFile   = "index.json"
	ConfigFile  = "config.toml"

	IgnoreFile = ".lvcignore"
)

const (
	DefaultBranch = "master"
	DefaultHash   = "xxh3" // "xxh3" | "sha256" | "cid"
)

// DefaultIgnoredFiles are never listed as part of the working tree.
var DefaultIgnoredFiles = []string{RepoDir}

// RepoConfig locates a repository: the working tree it versions and the
// metadata directory inside it.
type RepoConfig struct {
	WorkDir  string
	RepoRoot string
}

// NewRepoConfig returns the layout for a working tree rooted at workDir.
func NewRepoConfig(workDir string) *RepoConfig {
	if workDir == "" {
		workDir = "."
	}
	return &RepoConfig{
		WorkDir:  workDir,
		RepoRoot: filepath.Join(workDir, RepoDir),
	}
}

func (c *RepoConfig) CommitsDir() string  { return filepath.Join(c.RepoRoot, CommitsDir) }
func (c *RepoConfig) BranchesDir() string { return filepath.Join(c.RepoRoot, BranchesDir) }
func (c *RepoConfig) ObjectsDir() string  { return filepath.Join(c.RepoRoot, ObjectsDir) }
func (c *RepoConfig) HeadFile() string    { return filepath.Join(c.RepoRoot, HeadFile) }
func (c *RepoConfig) IndexFile() string   { return filepath.Join(c.RepoRoot, IndexFile) }
func (c *RepoConfig) ConfigFile() string  { return filepath.Join(c.RepoRoot, ConfigFile) }
func (c *RepoConfig) IgnoreFile() string  { return filepath.Join(c.WorkDir, IgnoreFile) }

// BranchFile returns the path of the file holding the tip of branch name.
func (c *RepoConfig) BranchFile(name string) string {
	return filepath.Join(c.BranchesDir(), name)
}
