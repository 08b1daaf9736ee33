package command_test

import (
	"errors"
	"flag"
	"testing"

	"github.com/keshon/lvc/internal/command"
)

type fakeCommand struct {
	name    string
	aliases []string
	subs    []command.Command
	ran     *[]string
}

func (f *fakeCommand) Name() string                   { return f.name }
func (f *fakeCommand) Short() string                  { return "" }
func (f *fakeCommand) Aliases() []string              { return f.aliases }
func (f *fakeCommand) Usage() string                  { return f.name }
func (f *fakeCommand) Brief() string                  { return "" }
func (f *fakeCommand) Help() string                   { return "" }
func (f *fakeCommand) Subcommands() []command.Command { return f.subs }
func (f *fakeCommand) Flags(fs *flag.FlagSet)         {}
func (f *fakeCommand) Run(ctx *command.Context) error {
	*f.ran = append(*f.ran, f.name)
	return nil
}

func TestTreeResolve(t *testing.T) {
	var ran []string
	sub := &fakeCommand{name: "list", ran: &ran}
	top := &fakeCommand{name: "remote", aliases: []string{"rm"}, subs: []command.Command{sub}, ran: &ran}

	tree := command.NewTree()
	tree.Register(top)

	tests := []struct {
		args []string
		want string
		rest int
	}{
		{[]string{"remote"}, "remote", 0},
		{[]string{"rm", "x"}, "remote", 1},
		{[]string{"remote", "list", "-v"}, "list", 1},
	}
	for _, tt := range tests {
		node, rest, err := tree.Resolve(tt.args)
		if err != nil {
			t.Fatalf("Resolve(%v) failed: %v", tt.args, err)
		}
		if node.Cmd.Name() != tt.want || len(rest) != tt.rest {
			t.Errorf("Resolve(%v) = %s %v", tt.args, node.Cmd.Name(), rest)
		}
	}

	_, _, err := tree.Resolve([]string{"nope"})
	var unknown *command.UnknownCommandError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Errorf("expected UnknownCommandError for nope, got %v", err)
	}
	if _, ok := tree.Get("rm"); !ok {
		t.Error("aliases must be registered")
	}

	cmds := tree.Commands()
	if len(cmds) != 2 || cmds[0].Name() != "list" || cmds[1].Name() != "remote" {
		names := make([]string, 0, len(cmds))
		for _, c := range cmds {
			names = append(names, c.Name())
		}
		t.Errorf("Commands() = %v, want [list remote]", names)
	}
}

func TestTreeRejectsDuplicateNames(t *testing.T) {
	var ran []string
	tree := command.NewTree()
	tree.Register(&fakeCommand{name: "status", ran: &ran})

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a duplicate alias")
		}
	}()
	tree.Register(&fakeCommand{name: "stat", aliases: []string{"status"}, ran: &ran})
}

func TestApplyMiddlewaresOrder(t *testing.T) {
	var ran []string
	cmd := &fakeCommand{name: "cmd", ran: &ran}

	tag := func(name string) command.Middleware {
		return func(next command.Command) command.Command {
			return &command.WrappedCommand{
				Command: next,
				Wrap: func(ctx *command.Context) error {
					ran = append(ran, name)
					return next.Run(ctx)
				},
			}
		}
	}

	wrapped := command.ApplyMiddlewares(cmd, tag("inner"), tag("outer"))
	if err := wrapped.Run(&command.Context{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer", "inner", "cmd"}
	if len(ran) != len(want) {
		t.Fatalf("got %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("got %v, want %v", ran, want)
		}
	}
}
