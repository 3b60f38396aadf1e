package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Params configures an Interpreter.
type Params struct {
	Store storage.Store
	// DefaultFolderID is the folder used by add and mkdir when none is given.
	// Empty means the Bookmarks Bar.
	DefaultFolderID string
	Logger          *slog.Logger
}

// Interpreter owns one interactive session: the store, the default folder and
// the bookmark snapshot that is refreshed after every mutating command.
type Interpreter struct {
	store           storage.Store
	defaultFolderID string
	logger          *slog.Logger

	// mu serializes Execute.
	mu sync.Mutex

	snapMu     sync.RWMutex
	snapshot   *model.Node
	generation uint64
}

// New creates an Interpreter. Call Start to load the initial snapshot.
func New(p Params) *Interpreter {
	folder := p.DefaultFolderID
	if folder == "" {
		folder = model.BookmarksBarID
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		store:           p.Store,
		defaultFolderID: folder,
		logger:          logger,
	}
}

// Start loads the initial snapshot.
func (i *Interpreter) Start(ctx context.Context) error {
	return i.refresh(ctx)
}

// Snapshot returns the most recently fetched tree, or nil before the first
// successful refresh. Callers must not modify it.
func (i *Interpreter) Snapshot() *model.Node {
	i.snapMu.RLock()
	defer i.snapMu.RUnlock()
	return i.snapshot
}

// Generation counts refresh attempts, successful or not.
func (i *Interpreter) Generation() uint64 {
	i.snapMu.RLock()
	defer i.snapMu.RUnlock()
	return i.generation
}

// Execute runs one command line and returns the blocks it produced, starting
// with the echo of the line. It never fails: every error becomes a block.
func (i *Interpreter) Execute(ctx context.Context, line string) output.Result {
	return i.execute(ctx, line, Tokenize(line))
}

// ExecuteArgs runs a command that is already split into tokens, such as
// process arguments after the shell removed its own quoting. The tokens are
// used as given, so they may contain spaces and quote characters. Empty
// arguments are dropped.
func (i *Interpreter) ExecuteArgs(ctx context.Context, args []string) output.Result {
	tokens := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			tokens = append(tokens, a)
		}
	}
	return i.execute(ctx, JoinArgs(tokens), tokens)
}

func (i *Interpreter) execute(ctx context.Context, line string, tokens []string) output.Result {
	i.mu.Lock()
	defer i.mu.Unlock()

	result := output.Result{Blocks: []output.Block{output.Echo(line)}}

	if len(tokens) == 0 {
		return result
	}
	name := strings.ToLower(tokens[0])

	res := i.dispatch(ctx, name, tokens)
	result.Blocks = append(result.Blocks, res.Blocks...)
	result.Cleared = res.Cleared

	if IsMutating(name) {
		if err := i.refresh(ctx); err != nil {
			i.logger.Warn("refresh bookmarks", "command", name, "error", err)
		}
	}

	return result
}

// dispatch parses and runs a command, turning errors and panics into blocks.
func (i *Interpreter) dispatch(ctx context.Context, name string, tokens []string) (res output.Result) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("command panicked", "command", name, "panic", r)
			res.Blocks = append(res.Blocks, output.Error(fmt.Sprintf("Error: %v", r)))
		}
	}()

	cmd, err := Parse(tokens)
	if err != nil {
		return output.Result{Blocks: i.parseErrorBlocks(err)}
	}

	res, err = i.run(ctx, cmd)
	if err != nil {
		i.logger.Error("command failed", "command", name, "error", err)
		res.Blocks = append(res.Blocks, output.Error("Error: "+err.Error()))
	}
	return res
}

func (i *Interpreter) parseErrorBlocks(err error) []output.Block {
	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		return []output.Block{
			output.Error(unknown.Error()),
			output.Info(hintFor(unknown.Name)),
		}
	}
	return []output.Block{output.Error(err.Error())}
}

// run invokes the handler for cmd. Errors returned here are unexpected
// failures; expected ones are already rendered into the result.
func (i *Interpreter) run(ctx context.Context, cmd Command) (output.Result, error) {
	var (
		blocks []output.Block
		err    error
	)

	switch c := cmd.(type) {
	case HelpCommand:
		blocks = []output.Block{helpBlock()}
	case ListCommand:
		blocks, err = i.list(ctx, c)
	case AddCommand:
		blocks = i.add(ctx, c)
	case RemoveCommand:
		blocks = i.remove(ctx, c)
	case SearchCommand:
		blocks, err = i.search(ctx, c)
	case MkdirCommand:
		blocks = i.mkdir(ctx, c)
	case MoveCommand:
		blocks = i.move(ctx, c)
	case TreeCommand:
		blocks, err = i.showTree(ctx)
	case ClearCommand:
		return output.Result{Cleared: true}, nil
	default:
		err = fmt.Errorf("unhandled command %q", cmd.Name())
	}

	return output.Result{Blocks: blocks}, err
}

func (i *Interpreter) refresh(ctx context.Context) error {
	root, err := i.store.GetTree(ctx)

	i.snapMu.Lock()
	defer i.snapMu.Unlock()
	i.generation++
	if err != nil {
		return err
	}
	i.snapshot = root
	return nil
}

const helpHint = "Type 'help' to see available commands"

// hintFor suggests the closest command name for a mistyped one.
func hintFor(name string) string {
	matches := fuzzy.Find(name, CommandNames())
	if len(matches) == 0 {
		return helpHint
	}
	return fmt.Sprintf("Did you mean '%s'? %s", matches[0].Str, helpHint)
}
