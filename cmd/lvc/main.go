package main

import (
	"os"

	"github.com/keshon/lvc/internal/command"
	_ "github.com/keshon/lvc/internal/command/all"
	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
)

func main() {
	logging.Setup(os.Stderr, logLevelSettings().LogLevel())

	if len(os.Args) < 2 {
		command.RunCLI([]string{"help"})
		os.Exit(0)
	}
	command.RunCLI(os.Args[1:])
}

// logLevelSettings reads config.toml of the enclosing repository, if any,
// and applies the environment on top.
func logLevelSettings() *config.Settings {
	s := config.DefaultSettings()

	osfs := fs.NewOSFS()
	if root := config.ResolveWorkingTreeRoot(osfs, config.Cwd()); root != "" {
		if loaded, err := config.LoadSettings(osfs, config.NewRepoConfig(root).ConfigFile()); err == nil {
			s = loaded
		}
	}
	s.ApplyEnv(os.LookupEnv)
	return s
}
