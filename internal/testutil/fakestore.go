// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"todo-cli/internal/model"
)

// ErrNotFound is returned when a task id is unknown to the fake store.
var ErrNotFound = errors.New("not found")

// Call records one store call.
type Call struct {
	Op   string // list|create|toggle|delete
	ID   model.TaskID
	Text string
}

// FakeStore is an in-memory Task Store for tests. It hands out increasing integer ids and lists
// newest first, like the reference server.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []model.Task // newest first
	nextID int
	calls  []Call

	// Error injection for testing.
	ListErr   error
	CreateErr error
	ToggleErr error
	DeleteErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{nextID: 1}
}

// Seed adds tasks as if they had been created in order; the last one lists first.
func (f *FakeStore) Seed(texts ...string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Task
	for _, text := range texts {
		t := f.newTaskLocked(text)
		out = append(out, t)
	}
	return out
}

// SetCompleted flips a stored task behind the client's back.
func (f *FakeStore) SetCompleted(id model.TaskID, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
		}
	}
}

// Calls returns a copy of all recorded calls.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount counts recorded calls of one op ("" counts all).
func (f *FakeStore) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if op == "" || c.Op == op {
			n++
		}
	}
	return n
}

// Snapshot returns the stored tasks newest first.
func (f *FakeStore) Snapshot() []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func (f *FakeStore) List(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *FakeStore) Create(ctx context.Context, text string) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Text: text})
	if f.CreateErr != nil {
		return model.Task{}, f.CreateErr
	}
	return f.newTaskLocked(text), nil
}

func (f *FakeStore) Toggle(ctx context.Context, id model.TaskID) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "toggle", ID: id})
	if f.ToggleErr != nil {
		return model.Task{}, f.ToggleErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			return f.tasks[i], nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (f *FakeStore) Delete(ctx context.Context, id model.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeStore) newTaskLocked(text string) model.Task {
	t := model.Task{ID: model.TaskID(strconv.Itoa(f.nextID)), Text: text}
	f.nextID++
	f.tasks = append([]model.Task{t}, f.tasks...)
	return t
}
