package command

import (
	"fmt"
	"sort"

	lvcerrors "github.com/keshon/lvc/internal/errors"
)

// Node is one level of the command tree. A command and its aliases share
// the same node.
type Node struct {
	Cmd         Command
	Subcommands map[string]*Node
}

// CommandTree manages all commands and subcommands.
type CommandTree struct {
	root *Node
}

// UnknownCommandError is returned when args name no registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	if e.Name == "" {
		return "please enter a command"
	}
	return fmt.Sprintf("no command with that name exists: %s", e.Name)
}

func (e *UnknownCommandError) Unwrap() error { return lvcerrors.ErrInvalidOperation }

// NewTree creates a new empty command tree.
func NewTree() *CommandTree {
	return &CommandTree{
		root: &Node{Subcommands: make(map[string]*Node)},
	}
}

// Register inserts cmd under its name and aliases, together with its
// subcommands. A name registered twice panics; commands register from
// init functions, so a clash is a build mistake.
func (t *CommandTree) Register(cmd Command) {
	t.insert(t.root, cmd)
}

func (t *CommandTree) insert(parent *Node, cmd Command) {
	node := &Node{Cmd: cmd, Subcommands: make(map[string]*Node)}
	for _, sub := range cmd.Subcommands() {
		t.insert(node, sub)
	}

	for _, name := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		if _, dup := parent.Subcommands[name]; dup {
			panic(fmt.Sprintf("command %q registered twice", name))
		}
		parent.Subcommands[name] = node
	}
}

// Get returns a top-level command by name or alias.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.root.Subcommands[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

// Resolve walks down the tree following args and returns the deepest
// command matched with the arguments left over.
func (t *CommandTree) Resolve(args []string) (*Node, []string, error) {
	node := t.root
	for len(args) > 0 {
		next, ok := node.Subcommands[args[0]]
		if !ok {
			break
		}
		node = next
		args = args[1:]
	}
	if node.Cmd == nil {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return nil, nil, &UnknownCommandError{Name: name}
	}
	return node, args, nil
}

// Commands returns every command in the tree once, sorted by name.
func (t *CommandTree) Commands() []Command {
	var cmds []Command
	seen := make(map[*Node]bool)

	var walk func(node *Node)
	walk = func(node *Node) {
		for _, sub := range node.Subcommands {
			if seen[sub] {
				continue
			}
			seen[sub] = true
			cmds = append(cmds, sub.Cmd)
			walk(sub)
		}
	}
	walk(t.root)

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}
