package config

import (
	"os"
	"path/filepath"

	"github.com/keshon/lvc/internal/fs"
)

// ResolveWorkingTreeRoot determines the working tree root by walking up from
// start until it finds a repository directory. It returns "" when none is found.
func ResolveWorkingTreeRoot(fsys fs.FS, start string) string {
	cwd, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if fsys.IsDir(filepath.Join(cwd, RepoDir)) {
			return cwd
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break // reached filesystem root
		}
		cwd = parent
	}
	return ""
}

// Cwd returns the current working directory, or "." if it cannot be read.
func Cwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
