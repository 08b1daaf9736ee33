// Package meta persists commits, branch tips and the HEAD reference.
package meta

import (
	"fmt"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/store/object"
)

// MetaContext gives access to the history records of one repository.
type MetaContext struct {
	Config  *config.RepoConfig
	FS      fs.FS
	Commits *object.Store
}

// NewMeta returns a MetaContext over an existing layout. Commits are stored
// through commits, which must be rooted at cfg.CommitsDir().
func NewMeta(cfg *config.RepoConfig, fsys fs.FS, commits *object.Store) (*MetaContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}
	return &MetaContext{Config: cfg, FS: fsys, Commits: commits}, nil
}

// CreateLayout creates the metadata directories under cfg.RepoRoot.
func CreateLayout(cfg *config.RepoConfig, fsys fs.FS) error {
	dirs := []string{
		cfg.RepoRoot,
		cfg.CommitsDir(),
		cfg.BranchesDir(),
		cfg.ObjectsDir(),
	}
	for _, d := range dirs {
		if err := fsys.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %q: %w", d, err)
		}
	}
	return nil
}

// IsMetaExists checks if the given config points to an existing repository.
func IsMetaExists(cfg *config.RepoConfig, fsys fs.FS) bool {
	fi, err := fsys.Stat(cfg.HeadFile())
	return err == nil && !fi.IsDir()
}
