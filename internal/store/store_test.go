package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"todo-cli/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "postgres", "x"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if _, err := Open(context.Background(), DriverSQLite, " "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestCreateList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	empty, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	a, err := s.Create(ctx, "  first  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Text != "first" || a.Completed || a.ID.IsZero() {
		t.Fatalf("unexpected created task %+v", a)
	}
	b, err := s.Create(ctx, "second")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestCreate_RejectsBlank(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Create(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank text")
	}
}

func TestToggle_FlipsAndReturnsRecord(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	a, _ := s.Create(ctx, "a")

	got, err := s.Toggle(ctx, a.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !got.Completed || got.ID != a.ID || got.Text != "a" {
		t.Fatalf("unexpected toggled task %+v", got)
	}
	got, err = s.Toggle(ctx, a.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got.Completed {
		t.Fatalf("expected second toggle to reopen, got %+v", got)
	}
}

func TestToggleDelete_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, id := range []model.TaskID{"999", "abc", "-1", ""} {
		if _, err := s.Toggle(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Toggle(%q): expected ErrNotFound, got %v", id, err)
		}
		if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestDelete_RemovesOnce(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	a, _ := s.Create(ctx, "a")

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	got, _ := s.List(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.db")

	s, err := Open(ctx, DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Create(ctx, "persist"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = s.Close()

	s, err = Open(ctx, DriverSQLite, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.List(ctx)
	if err != nil || len(got) != 1 || got[0].Text != "persist" {
		t.Fatalf("expected persisted task, got %+v (%v)", got, err)
	}
}
