// Package todo keeps a local task list consistent with the Task Store.
//
// Every operation is split in two. The Request half talks to the store and may run on any
// goroutine; it never reads or writes client state. The Settle half applies the store's answer
// and must run on the single goroutine that owns the Client (the UI event loop). Local state only
// changes in Settle, and only after the store confirmed the change, so a failed request never
// needs rolling back.
package todo

import (
	"context"
	"time"

	"todo-cli/internal/model"
)

const (
	// RemoveDelay is how long a deleted row stays on screen, marked as removing, before the
	// record leaves local state.
	RemoveDelay = 300 * time.Millisecond

	// NoticeDuration is how long a notice stays visible.
	NoticeDuration = 3 * time.Second
)

// Store is the Task Store contract consumed by the client.
type Store interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, text string) (model.Task, error)
	Toggle(ctx context.Context, id model.TaskID) (model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

// Request performs the network half of an operation. A nil Request means there is nothing to
// send (validation failure, stale id, duplicate submit).
type Request func(ctx context.Context) Result

// Result is a settled network call, handed back to Settle on the owning goroutine.
type Result interface {
	settle(c *Client) Outcome
}

// Outcome tells the presentation what to do after a settlement.
type Outcome struct {
	Notice *Notice
	// Render means rows and stats must be rebuilt from Tasks().
	Render bool
	// ResetInput clears the text input (successful create).
	ResetInput bool
	// FocusInput returns focus to the text input (any settled create).
	FocusInput bool
	// After, when set, must be settled once Delay has elapsed.
	After *Deferred
}

type Deferred struct {
	Delay  time.Duration
	Result Result
}

// Client is the local mirror of the Task Store. It is not safe for concurrent use: only the
// goroutine that owns it may call its methods, Requests excepted.
type Client struct {
	store    Store
	tasks    []model.Task
	removing map[model.TaskID]bool
	creating bool
}

func New(store Store) *Client {
	return &Client{
		store:    store,
		removing: map[model.TaskID]bool{},
	}
}

// Settle applies a result and reports what changed.
func (c *Client) Settle(r Result) Outcome {
	if r == nil {
		return Outcome{}
	}
	return r.settle(c)
}

// Tasks returns a copy of the local list in display order.
func (c *Client) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Client) Len() int { return len(c.tasks) }

func (c *Client) Find(id model.TaskID) (model.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return model.Task{}, false
}

// Removing reports whether the row for id is waiting out RemoveDelay.
func (c *Client) Removing(id model.TaskID) bool { return c.removing[id] }

// Creating reports whether a create request is in flight.
func (c *Client) Creating() bool { return c.creating }

// Completed returns the completed tasks in list order.
func (c *Client) Completed() []model.Task {
	var out []model.Task
	for _, t := range c.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Load fetches the full list. On success the local list is replaced wholesale.
func (c *Client) Load() Request {
	store := c.store
	return func(ctx context.Context) Result {
		tasks, err := store.List(ctx)
		return loadResult{tasks: tasks, err: err}
	}
}

// Create validates text and returns the request that creates it. Validation errors are
// ErrEmptyText or ErrTextTooLong; see ValidationNotice. While a create is in flight further
// calls return a nil Request and no error.
func (c *Client) Create(text string) (Request, error) {
	clean, err := ValidateText(text)
	if err != nil {
		return nil, err
	}
	if c.creating {
		return nil, nil
	}
	c.creating = true
	store := c.store
	return func(ctx context.Context) Result {
		task, err := store.Create(ctx, clean)
		return createResult{task: task, err: err}
	}, nil
}

// Toggle returns the request that flips id's completed flag on the server, or nil when id is
// no longer in the local list.
func (c *Client) Toggle(id model.TaskID) Request {
	if c.indexOf(id) < 0 {
		return nil
	}
	store := c.store
	return func(ctx context.Context) Result {
		task, err := store.Toggle(ctx, id)
		return toggleResult{id: id, task: task, err: err}
	}
}

// NeedsConfirm reports whether removing id requires the user to confirm first.
func (c *Client) NeedsConfirm(id model.TaskID) bool {
	t, ok := c.Find(id)
	return ok && textLen(t.Text) > ConfirmTextLen
}

// Remove returns the request that deletes id, or nil when id is no longer in the local list.
// Callers ask for confirmation first when NeedsConfirm(id) is true.
func (c *Client) Remove(id model.TaskID) Request {
	if c.indexOf(id) < 0 {
		return nil
	}
	store := c.store
	return func(ctx context.Context) Result {
		err := store.Delete(ctx, id)
		return removeResult{id: id, err: err}
	}
}

func (c *Client) indexOf(id model.TaskID) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// replaceAll installs a fresh list from the store, keeping the first record of any duplicated id.
func (c *Client) replaceAll(tasks []model.Task) {
	seen := make(map[model.TaskID]bool, len(tasks))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	c.tasks = out
	for id := range c.removing {
		if !seen[id] {
			delete(c.removing, id)
		}
	}
}

// prepend inserts t at the head, dropping an older record with the same id.
func (c *Client) prepend(t model.Task) {
	out := make([]model.Task, 0, len(c.tasks)+1)
	out = append(out, t)
	for _, existing := range c.tasks {
		if existing.ID != t.ID {
			out = append(out, existing)
		}
	}
	c.tasks = out
}

func (c *Client) drop(id model.TaskID) {
	delete(c.removing, id)
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	out := make([]model.Task, 0, len(c.tasks)-1)
	out = append(out, c.tasks[:i]...)
	out = append(out, c.tasks[i+1:]...)
	c.tasks = out
}
