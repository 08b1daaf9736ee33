package command

// tree holds every command registered by the command packages.
var tree = NewTree()

// RegisterCommand adds a command to the global tree. Command packages call
// it from init.
func RegisterCommand(cmd Command) {
	tree.Register(cmd)
}

// ResolveCommand finds the command args name in the global tree.
func ResolveCommand(args []string) (*Node, []string, error) {
	return tree.Resolve(args)
}

// GetCommand returns a registered command by name or alias.
func GetCommand(name string) (Command, bool) {
	return tree.Get(name)
}

// AllCommands returns every registered command, sorted by name.
func AllCommands() []Command {
	return tree.Commands()
}
