// Package server is the reference Task Store: a small JSON API over internal/store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"todo-cli/internal/api"
	"todo-cli/internal/model"
	"todo-cli/internal/store"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Backend is the storage the server needs. Unknown ids must be reported as store.ErrNotFound.
type Backend interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, text string) (model.Task, error)
	Toggle(ctx context.Context, id model.TaskID) (model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

const (
	msgTextRequired = "Todo text is required"
	msgNotFound     = "Todo not found"
	msgDeleted      = "Todo deleted successfully"

	maxBodyBytes = 64 << 10
)

type Server struct {
	backend Backend
	log     *slog.Logger
	router  *mux.Router
}

func New(backend Backend, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{backend: backend, log: log, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/api/todos", s.listTodos).Methods(http.MethodGet)
	r.HandleFunc("/api/todos", s.createTodo).Methods(http.MethodPost)
	r.HandleFunc("/api/todos/{id:[0-9]+}", s.toggleTodo).Methods(http.MethodPut)
	r.HandleFunc("/api/todos/{id:[0-9]+}", s.deleteTodo).Methods(http.MethodDelete)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Handler returns the router wrapped in request-id and access logging. The wrapper sits outside
// mux so unmatched routes are logged too.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(api.RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(api.RequestIDHeader, rid)
		m := httpsnoop.CaptureMetrics(s.router, w, r)
		s.log.Info("handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
			"request_id", rid,
		)
	})
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.backend.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil ||
		body.Text == nil || strings.TrimSpace(*body.Text) == "" {
		writeError(w, http.StatusBadRequest, msgTextRequired)
		return
	}
	task, err := s.backend.Create(r.Context(), strings.TrimSpace(*body.Text))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) toggleTodo(w http.ResponseWriter, r *http.Request) {
	task, err := s.backend.Toggle(r.Context(), model.TaskID(mux.Vars(r)["id"]))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	err := s.backend.Delete(r.Context(), model.TaskID(mux.Vars(r)["id"]))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msgDeleted})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("store failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down gracefully. ready, when
// non-nil, receives the bound address once the listener is up.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *slog.Logger, ready func(net.Addr)) error {
	if log == nil {
		log = slog.Default()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}
	log.Info("listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
