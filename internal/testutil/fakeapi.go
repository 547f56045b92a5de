package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"tasksync/internal/service"
)

// Request is one request observed by FakeAPI.
type Request struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	RequestID   string
	Body        map[string]any
	Status      int
}

// FakeAPI is an in-memory HTTP implementation of the todos REST API.
type FakeAPI struct {
	srv    *httptest.Server
	mu     sync.Mutex
	todos  []service.Task
	nextID int
	fail   map[string]int // "METHOD /path" -> status
	log    []Request
}

// NewFakeAPI starts a FakeAPI that is shut down when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	api := &FakeAPI{nextID: 1, fail: make(map[string]int)}

	r := mux.NewRouter()
	r.HandleFunc("/todos", api.list).Methods(http.MethodGet)
	r.HandleFunc("/todos", api.create).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id:[0-9]+}", api.update).Methods(http.MethodPatch)
	r.HandleFunc("/todos/{id:[0-9]+}", api.remove).Methods(http.MethodDelete)

	api.srv = httptest.NewServer(api.capture(r))
	t.Cleanup(api.srv.Close)
	return api
}

// URL returns the base URL of the server.
func (a *FakeAPI) URL() string {
	return a.srv.URL
}

// Seed stores a task as if it had been created earlier.
func (a *FakeAPI) Seed(task service.Task) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.todos = append(a.todos, task)
	if task.ID >= a.nextID {
		a.nextID = task.ID + 1
	}
}

// Fail makes requests matching method and path answer with status.
func (a *FakeAPI) Fail(method, path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail[method+" "+path] = status
}

// Requests returns the observed requests in arrival order.
func (a *FakeAPI) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Request, len(a.log))
	copy(out, a.log)
	return out
}

// Todos returns the stored tasks.
func (a *FakeAPI) Todos() []service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]service.Task, len(a.todos))
	copy(out, a.todos)
	return out
}

// capture records every request together with the status it was answered with.
func (a *FakeAPI) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil && r.ContentLength != 0 {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				req.Body = body
			}
		}

		a.mu.Lock()
		status, failing := a.fail[r.Method+" "+r.URL.Path]
		a.mu.Unlock()

		var m httpsnoop.Metrics
		if failing {
			m = httpsnoop.CaptureMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(status), status)
			}), w, r)
		} else {
			r = r.WithContext(withBody(r.Context(), req.Body))
			m = httpsnoop.CaptureMetrics(next, w, r)
		}
		req.Status = m.Code

		a.mu.Lock()
		a.log = append(a.log, req)
		a.mu.Unlock()
	})
}

func (a *FakeAPI) list(w http.ResponseWriter, r *http.Request) {
	owner, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	out := []service.Task{}
	for _, t := range a.todos {
		if t.OwnerID == owner {
			out = append(out, t)
		}
	}
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (a *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	title, _ := body["title"].(string)
	owner, _ := body["userId"].(float64)
	completed, _ := body["completed"].(bool)

	a.mu.Lock()
	task := service.Task{ID: a.nextID, Title: title, Completed: completed, OwnerID: int(owner)}
	a.nextID++
	a.todos = append(a.todos, task)
	a.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (a *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	body := bodyFrom(r.Context())

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, t := range a.todos {
		if t.ID != id {
			continue
		}
		if title, ok := body["title"].(string); ok {
			t.Title = title
		}
		if completed, ok := body["completed"].(bool); ok {
			t.Completed = completed
		}
		a.todos[i] = t
		writeJSON(w, http.StatusOK, t)
		return
	}
	http.Error(w, fmt.Sprintf("todo %d not found", id), http.StatusNotFound)
}

func (a *FakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, t := range a.todos {
		if t.ID == id {
			a.todos = append(a.todos[:i], a.todos[i+1:]...)
			writeJSON(w, http.StatusOK, 1)
			return
		}
	}
	http.Error(w, fmt.Sprintf("todo %d not found", id), http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
