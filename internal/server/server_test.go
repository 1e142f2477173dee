package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"todo-cli/internal/api"
	"todo-cli/internal/model"
	"todo-cli/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	st, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	ts := httptest.NewServer(New(st, log).Handler())
	t.Cleanup(ts.Close)
	return ts, &logs
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

func TestCreate_Validation(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, body := range []string{`{}`, `{"text":"   "}`, `not json`, `{"text":null}`} {
		code, obj, _ := doJSON(t, http.MethodPost, ts.URL+"/api/todos", body)
		if code != http.StatusBadRequest || obj["error"] != "Todo text is required" {
			t.Fatalf("body %q: got %d %v", body, code, obj)
		}
	}
}

func TestCreate_TrimsAndReturns201(t *testing.T) {
	ts, _ := newTestServer(t)

	code, obj, _ := doJSON(t, http.MethodPost, ts.URL+"/api/todos", `{"text":"  milk  "}`)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if obj["text"] != "milk" || obj["completed"] != false {
		t.Fatalf("unexpected body %v", obj)
	}
	if _, ok := obj["id"].(float64); !ok {
		t.Fatalf("expected numeric id, got %T", obj["id"])
	}
}

func TestToggleDelete_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		code, obj, _ := doJSON(t, method, ts.URL+"/api/todos/42", "")
		if code != http.StatusNotFound || obj["error"] != "Todo not found" {
			t.Fatalf("%s: got %d %v", method, code, obj)
		}
	}
	if code, _, _ := doJSON(t, http.MethodPut, ts.URL+"/api/todos/abc", ""); code != http.StatusNotFound {
		t.Fatalf("non-integer id: expected 404, got %d", code)
	}
}

func TestDelete_Message(t *testing.T) {
	ts, _ := newTestServer(t)
	_, created, _ := doJSON(t, http.MethodPost, ts.URL+"/api/todos", `{"text":"x"}`)
	id := int(created["id"].(float64))

	code, obj, _ := doJSON(t, http.MethodDelete, ts.URL+"/api/todos/"+strconv.Itoa(id), "")
	if code != http.StatusOK || obj["message"] != "Todo deleted successfully" {
		t.Fatalf("got %d %v", code, obj)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	ts, _ := newTestServer(t)
	code, _, raw := doJSON(t, http.MethodGet, ts.URL+"/api/todos", "")
	if code != http.StatusOK || strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("got %d %q", code, raw)
	}
}

func TestClientAgainstServer_FullCycle(t *testing.T) {
	ts, logs := newTestServer(t)
	ctx := context.Background()

	c, err := api.New(api.Options{BaseURL: ts.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	a, err := c.Create(ctx, "first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := c.Create(ctx, "second")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Fatalf("expected newest first, got %+v", tasks)
	}

	toggled, err := c.Toggle(ctx, a.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !toggled.Completed || toggled.Text != "first" {
		t.Fatalf("unexpected toggle result %+v", toggled)
	}

	if err := c.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err = c.Delete(ctx, b.ID)
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	if se.Message != "Todo not found" {
		t.Fatalf("expected server message, got %q", se.Message)
	}

	if _, err := c.Toggle(ctx, model.TaskID("not-a-number")); !api.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for non-integer id, got %v", err)
	}

	if !strings.Contains(logs.String(), "request_id=") {
		t.Fatalf("expected request ids in server logs:\n%s", logs.String())
	}
}

func TestHandler_EchoesRequestID(t *testing.T) {
	ts, logs := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/todos", nil)
	req.Header.Set(api.RequestIDHeader, "rid-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(api.RequestIDHeader); got != "rid-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	if !strings.Contains(logs.String(), "request_id=rid-123") {
		t.Fatalf("expected request id logged:\n%s", logs.String())
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", h, slog.New(slog.NewTextHandler(io.Discard, nil)), func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server never became ready")
	}

	resp, err := http.Get("http://" + addr.String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop after cancel")
	}
}
