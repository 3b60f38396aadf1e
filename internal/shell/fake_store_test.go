package shell_test

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/nikbrunner/bmterm/internal/model"
)

// fakeStore is an in-memory storage.Store that records every call.
type fakeStore struct {
	root   *model.Node
	nextID int
	calls  []string

	// err, when set, is returned by every method.
	err error
	// panicOn names a method that panics instead of returning.
	panicOn string
}

func newFakeStore(children ...*model.Node) *fakeStore {
	return &fakeStore{
		root:   &model.Node{ID: model.RootID, Children: children},
		nextID: 100,
	}
}

func (f *fakeStore) record(method string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(method+" "+strings.Join(args, " ")))
	if f.panicOn == method {
		panic(method + " exploded")
	}
	return f.err
}

func (f *fakeStore) byID(id string) (parent, node *model.Node) {
	stack := []*model.Node{f.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range n.Children {
			if c.ID == id {
				return n, c
			}
			stack = append(stack, c)
		}
	}
	if id == f.root.ID {
		return nil, f.root
	}
	return nil, nil
}

func (f *fakeStore) GetTree(ctx context.Context) (*model.Node, error) {
	if err := f.record("GetTree"); err != nil {
		return nil, err
	}
	return f.root, nil
}

func (f *fakeStore) GetChildren(ctx context.Context, folderID string) ([]model.Node, error) {
	if err := f.record("GetChildren", folderID); err != nil {
		return nil, err
	}
	_, n := f.byID(folderID)
	if n == nil {
		return nil, errors.New("can't find bookmark for id")
	}
	out := []model.Node{}
	for _, c := range n.Children {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) GetSubtree(ctx context.Context, id string) (*model.Node, error) {
	if err := f.record("GetSubtree", id); err != nil {
		return nil, err
	}
	_, n := f.byID(id)
	if n == nil {
		return nil, errors.New("can't find bookmark for id")
	}
	return n, nil
}

func (f *fakeStore) Create(ctx context.Context, params model.CreateParams) (*model.Node, error) {
	if err := f.record("Create", params.ParentID, params.Title, params.URL); err != nil {
		return nil, err
	}
	_, parent := f.byID(params.ParentID)
	if parent == nil {
		return nil, errors.New("can't find parent bookmark for id")
	}
	f.nextID++
	n := &model.Node{ID: strconv.Itoa(f.nextID), ParentID: parent.ID, Title: params.Title, URL: params.URL}
	parent.Children = append(parent.Children, n)
	return n, nil
}

func (f *fakeStore) Remove(ctx context.Context, id string) error {
	if err := f.record("Remove", id); err != nil {
		return err
	}
	return f.detach(id)
}

func (f *fakeStore) RemoveTree(ctx context.Context, id string) error {
	if err := f.record("RemoveTree", id); err != nil {
		return err
	}
	return f.detach(id)
}

func (f *fakeStore) detach(id string) error {
	parent, n := f.byID(id)
	if n == nil || parent == nil {
		return errors.New("can't find bookmark for id")
	}
	for i, c := range parent.Children {
		if c == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) Move(ctx context.Context, id string, dest model.MoveDestination) (*model.Node, error) {
	if err := f.record("Move", id, dest.ParentID); err != nil {
		return nil, err
	}
	_, target := f.byID(dest.ParentID)
	if target == nil {
		return nil, errors.New("can't find parent bookmark for id")
	}
	_, n := f.byID(id)
	if err := f.detach(id); err != nil {
		return nil, err
	}
	target.Children = append(target.Children, n)
	return n, nil
}

func (f *fakeStore) Search(ctx context.Context, query string) ([]model.Node, error) {
	if err := f.record("Search", query); err != nil {
		return nil, err
	}
	out := []model.Node{}
	stack := append([]*model.Node(nil), f.root.Children...)
	for len(stack) > 0 {
		n := stack[0]
		stack = stack[1:]
		if strings.Contains(strings.ToLower(n.Title), strings.ToLower(query)) {
			out = append(out, *n)
		}
		stack = append(stack, n.Children...)
	}
	return out, nil
}

// storeCalls returns the recorded calls minus the snapshot refreshes.
func (f *fakeStore) storeCalls() []string {
	out := []string{}
	for _, c := range f.calls {
		if c != "GetTree" {
			out = append(out, c)
		}
	}
	return out
}
