package shell

import (
	"errors"
	"strings"
)

// Command is one parsed, arity-checked command line.
// The set of implementations is closed; Interpreter dispatches with a type switch.
type Command interface {
	Name() string
	command()
}

type HelpCommand struct{}

// ListCommand lists the root, or the folder found by id or exact title when Path is set.
type ListCommand struct {
	Path string
}

// AddCommand creates a bookmark. An empty FolderID means the configured default folder.
type AddCommand struct {
	URL      string
	Title    string
	FolderID string
}

type RemoveCommand struct {
	ID string
}

// SearchCommand holds the query words re-joined with single spaces.
type SearchCommand struct {
	Query string
}

// MkdirCommand creates a folder. An empty ParentID means the configured default folder.
type MkdirCommand struct {
	Title    string
	ParentID string
}

type MoveCommand struct {
	ID       string
	FolderID string
}

type TreeCommand struct{}

type ClearCommand struct{}

func (HelpCommand) Name() string   { return "help" }
func (ListCommand) Name() string   { return "ls" }
func (AddCommand) Name() string    { return "add" }
func (RemoveCommand) Name() string { return "rm" }
func (SearchCommand) Name() string { return "search" }
func (MkdirCommand) Name() string  { return "mkdir" }
func (MoveCommand) Name() string   { return "mv" }
func (TreeCommand) Name() string   { return "tree" }
func (ClearCommand) Name() string  { return "clear" }

func (HelpCommand) command()   {}
func (ListCommand) command()   {}
func (AddCommand) command()    {}
func (RemoveCommand) command() {}
func (SearchCommand) command() {}
func (MkdirCommand) command()  {}
func (MoveCommand) command()   {}
func (TreeCommand) command()   {}
func (ClearCommand) command()  {}

// ErrEmptyLine is returned by Parse for a line without tokens.
var ErrEmptyLine = errors.New("empty command line")

// UsageError reports a known command invoked with too few arguments.
type UsageError struct {
	Command string
	Usage   string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// UnknownCommandError reports a command name that is not in the registry.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Name
}

type commandDef struct {
	name     string
	synopsis string // shown by help
	usage    string // shown on missing arguments
	desc     string
	minArgs  int
	build    func(args []string) Command
}

var registry = []commandDef{
	{
		name:     "help",
		synopsis: "help",
		desc:     "Show this help",
		build:    func([]string) Command { return HelpCommand{} },
	},
	{
		name:     "ls",
		synopsis: "ls [path]",
		desc:     "List bookmarks and folders",
		build: func(args []string) Command {
			return ListCommand{Path: arg(args, 0)}
		},
	},
	{
		name:     "add",
		synopsis: "add <url> <title> [folder]",
		usage:    "add <url> <title> [folder-id]",
		desc:     "Add a new bookmark",
		minArgs:  2,
		build: func(args []string) Command {
			return AddCommand{URL: args[0], Title: args[1], FolderID: arg(args, 2)}
		},
	},
	{
		name:     "rm",
		synopsis: "rm <id>",
		usage:    "rm <id>",
		desc:     "Remove a bookmark or folder",
		minArgs:  1,
		build: func(args []string) Command {
			return RemoveCommand{ID: args[0]}
		},
	},
	{
		name:     "search",
		synopsis: "search <query>",
		usage:    "search <query>",
		desc:     "Search bookmarks by title or URL",
		minArgs:  1,
		build: func(args []string) Command {
			return SearchCommand{Query: strings.Join(args, " ")}
		},
	},
	{
		name:     "mkdir",
		synopsis: "mkdir <name> [parent]",
		usage:    "mkdir <name> [parent-id]",
		desc:     "Create a new folder",
		minArgs:  1,
		build: func(args []string) Command {
			return MkdirCommand{Title: args[0], ParentID: arg(args, 1)}
		},
	},
	{
		name:     "mv",
		synopsis: "mv <id> <folder-id>",
		usage:    "mv <bookmark-id> <folder-id>",
		desc:     "Move bookmark to a folder",
		minArgs:  2,
		build: func(args []string) Command {
			return MoveCommand{ID: args[0], FolderID: args[1]}
		},
	},
	{
		name:     "tree",
		synopsis: "tree",
		desc:     "Display bookmark hierarchy",
		build:    func([]string) Command { return TreeCommand{} },
	},
	{
		name:     "clear",
		synopsis: "clear",
		desc:     "Clear the terminal",
		build:    func([]string) Command { return ClearCommand{} },
	},
}

// Parse resolves tokens[0], case-insensitively, to a command and validates
// the remaining tokens as its arguments. Extra arguments are ignored.
func Parse(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}

	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	for _, def := range registry {
		if def.name != name {
			continue
		}
		if len(args) < def.minArgs {
			return nil, &UsageError{Command: name, Usage: def.usage}
		}
		return def.build(args), nil
	}

	return nil, &UnknownCommandError{Name: name}
}

// CommandNames returns every command name in help order.
func CommandNames() []string {
	names := make([]string, len(registry))
	for i, def := range registry {
		names[i] = def.name
	}
	return names
}

// IsMutating reports whether a command name changes the store. The check is
// by name, so it holds even when the arguments were rejected.
func IsMutating(name string) bool {
	switch strings.ToLower(name) {
	case "add", "rm", "mkdir", "mv":
		return true
	}
	return false
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
