// Package repo implements the version-control operations on top of the
// object store, history records, staging area and working tree.
package repo

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keshon/lvc/internal/config"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/hash"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/stage"
	"github.com/keshon/lvc/internal/repo/store/object"
	"github.com/keshon/lvc/internal/repo/worktree"
)

// Repository represents an initialized repository.
type Repository struct {
	Config   *config.RepoConfig
	Settings *config.Settings
	FS       fs.FS
	Meta     *meta.MetaContext
	Blobs    *object.Store
	Work     *worktree.WorkTree
	Logger   *slog.Logger

	// Now stamps new commits. Tests pin it.
	Now func() time.Time
}

// InitOptions are fixed for the lifetime of a repository.
type InitOptions struct {
	Hash          string
	Compress      bool
	DefaultBranch string
}

// Init creates a repository in cfg.WorkDir holding only the root commit.
func Init(cfg *config.RepoConfig, fsys fs.FS, opts InitOptions) (*Repository, error) {
	if meta.IsMetaExists(cfg, fsys) {
		return nil, lvcerrors.ErrRepositoryExists
	}

	s := config.DefaultSettings()
	s.ID = uuid.NewString()
	if opts.Hash != "" {
		s.Core.Hash = opts.Hash
	}
	if opts.DefaultBranch != "" {
		s.Core.DefaultBranch = opts.DefaultBranch
	}
	s.Core.Compress = opts.Compress

	if _, err := hash.New(s.Core.Hash); err != nil {
		return nil, err
	}
	if err := meta.ValidateBranchName(s.Core.DefaultBranch); err != nil {
		return nil, err
	}

	if err := meta.CreateLayout(cfg, fsys); err != nil {
		return nil, err
	}
	if err := config.SaveSettings(fsys, cfg.ConfigFile(), s); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", config.ConfigFile, err)
	}

	r, err := build(cfg, fsys, s)
	if err != nil {
		return nil, err
	}

	root := meta.RootCommit()
	if _, err := r.Meta.SaveCommit(root); err != nil {
		return nil, err
	}
	if _, err := r.Meta.CreateBranch(s.Core.DefaultBranch, root.ID); err != nil {
		return nil, fmt.Errorf("failed to create default branch: %w", err)
	}
	if err := stage.New().Save(fsys, cfg.IndexFile()); err != nil {
		return nil, err
	}

	// HEAD goes last: a repository only exists once HEAD does
	if _, err := r.Meta.SetHeadRef(s.Core.DefaultBranch); err != nil {
		return nil, fmt.Errorf("failed to write HEAD: %w", err)
	}

	r.Logger.Debug("initialized repository", "id", s.ID, "hash", s.Core.Hash, "branch", s.Core.DefaultBranch, "root", root.ID)
	return r, nil
}

// Open opens an existing repository.
func Open(cfg *config.RepoConfig, fsys fs.FS) (*Repository, error) {
	if !meta.IsMetaExists(cfg, fsys) {
		return nil, lvcerrors.ErrNotRepository
	}

	s, err := config.LoadSettings(fsys, cfg.ConfigFile())
	if err != nil {
		return nil, err
	}
	return build(cfg, fsys, s)
}

func build(cfg *config.RepoConfig, fsys fs.FS, s *config.Settings) (*Repository, error) {
	h, err := hash.New(s.Core.Hash)
	if err != nil {
		return nil, err
	}

	blobFS := fsys
	if s.Core.Compress {
		blobFS = fs.NewCompressedFS(fsys)
	}

	mc, err := meta.NewMeta(cfg, fsys, object.NewStore(fsys, cfg.CommitsDir(), h))
	if err != nil {
		return nil, err
	}

	wt, err := worktree.New(fsys, cfg.WorkDir)
	if err != nil {
		return nil, err
	}

	return &Repository{
		Config:   cfg,
		Settings: s,
		FS:       fsys,
		Meta:     mc,
		Blobs:    object.NewStore(blobFS, cfg.ObjectsDir(), h),
		Work:     wt,
		Logger:   slog.Default().With("repo", s.ID),
		Now:      time.Now,
	}, nil
}

// Hash returns the name of the fingerprint algorithm in use.
func (r *Repository) Hash() string {
	return r.Blobs.Hasher.Name()
}

// state is everything an operation reads before it decides anything.
type state struct {
	branch string
	head   *meta.Commit
	stage  *stage.Area
}

func (r *Repository) load() (*state, error) {
	branch, err := r.Meta.CurrentBranch()
	if err != nil {
		return nil, err
	}
	tip, err := r.Meta.GetBranchTip(branch)
	if err != nil {
		return nil, err
	}
	head, err := r.Meta.GetCommit(tip)
	if err != nil {
		return nil, err
	}
	area, err := stage.Load(r.FS, r.Config.IndexFile())
	if err != nil {
		return nil, err
	}
	return &state{branch: branch, head: head, stage: area}, nil
}

func (r *Repository) saveStage(area *stage.Area) error {
	return area.Save(r.FS, r.Config.IndexFile())
}

// Resolve looks up a commit by full id or unique prefix.
func (r *Repository) Resolve(ref string) (*meta.Commit, error) {
	return r.Meta.ResolveCommit(ref)
}

// Head returns the current branch name and its tip commit.
func (r *Repository) Head() (string, *meta.Commit, error) {
	st, err := r.load()
	if err != nil {
		return "", nil, err
	}
	return st.branch, st.head, nil
}

// ContentEquals reports whether c tracks path with exactly data.
func (r *Repository) ContentEquals(c *meta.Commit, path string, data []byte) bool {
	id, ok := c.BlobOf(path)
	return ok && id == r.Blobs.Sum(data)
}
