package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/shell"
	"github.com/nikbrunner/bmterm/internal/tui/layout"
)

// scriptedExecutor returns canned results keyed by line.
type scriptedExecutor map[string]output.Result

func (s scriptedExecutor) Execute(ctx context.Context, line string) output.Result {
	return s[line]
}

func TestApp_ResultsAreAppendedInOrder(t *testing.T) {
	exec := scriptedExecutor{
		"mkdir News": {Blocks: []output.Block{output.Echo("mkdir News"), output.Success("✓ Folder created: News [4]")}},
		"ls":         {Blocks: []output.Block{output.Echo("ls"), output.NodeList("", nil)}},
		"clear":      {Blocks: []output.Block{output.Echo("clear")}, Cleared: true},
	}
	q := shell.NewQueue(exec, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	app := NewApp(AppParams{Queue: q}).WithDimensions(80, 24)

	receive := func() {
		t.Helper()
		updated, cmd := app.Update(app.waitForResult()())
		app = updated.(App)
		if cmd == nil {
			t.Fatal("expected the app to keep waiting for results")
		}
	}

	for _, line := range []string{"mkdir News", "ls"} {
		if err := q.Submit(line); err != nil {
			t.Fatalf("submit %q: %v", line, err)
		}
	}
	receive()
	receive()

	blocks := app.Transcript()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	if blocks[0].Text != "mkdir News" || blocks[2].Text != "ls" {
		t.Errorf("results out of order: %+v", blocks)
	}

	view := layout.StripANSI(app.View())
	if !strings.Contains(view, "✓ Folder created: News [4]") {
		t.Errorf("view should show the newest output, got:\n%s", view)
	}

	if err := q.Submit("clear"); err != nil {
		t.Fatal(err)
	}
	receive()

	if len(app.Transcript()) != 0 {
		t.Errorf("clear should empty the transcript, got %d blocks", len(app.Transcript()))
	}
}

func TestApp_QueueClosed(t *testing.T) {
	q := shell.NewQueue(scriptedExecutor{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = q.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	app := NewApp(AppParams{Queue: q})
	msg := app.waitForResult()()
	if _, ok := msg.(queueClosedMsg); !ok {
		t.Fatalf("expected queueClosedMsg, got %T", msg)
	}
	if _, cmd := app.Update(msg); cmd != nil {
		t.Error("app should stop waiting once the queue is closed")
	}
}

func TestRenderItem(t *testing.T) {
	app := NewApp(AppParams{}).WithDimensions(40, 10)

	tests := []struct {
		name string
		item output.Item
		want string
	}{
		{
			name: "folder",
			item: output.Item{Folder: true, Title: "Work", ID: "4"},
			want: "▸ Work  [4]",
		},
		{
			name: "tree bookmark",
			item: output.Item{Depth: 2, Title: "Docs", ID: "5"},
			want: "    ├─ Docs  [5]",
		},
		{
			name: "url truncated to width",
			item: output.Item{Title: "Go", URL: "https://go.dev/doc/effective_go#names", ID: "6"},
			want: "• Go  https://go.dev/doc/effec...  [6]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.StripANSI(app.renderItem(tt.item))
			if got != tt.want {
				t.Errorf("renderItem() = %q, want %q", got, tt.want)
			}
		})
	}
}
