package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"todo-app/internal/api"
	"todo-app/internal/auth"
	"todo-app/internal/task"
	"todo-app/internal/todolist"
	"todo-app/middleware"
)

type Handlers struct {
	Auth       *auth.AuthHandlers
	TodoLists  *todolist.TodoListHandlers
	Tasks      *task.TaskHandlers
	Middleware *middleware.Middleware
}

func (h *Handlers) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Keep every route on the root router: nested subrouters turn a method
	// mismatch into a 404.
	r.HandleFunc("/api/register", h.Auth.RegisterHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/login", h.Auth.LoginHandler).Methods(http.MethodPost)

	// Bearer-protected endpoints
	protected := func(handler http.HandlerFunc) http.Handler {
		return h.Middleware.AuthMiddleware(handler)
	}
	r.Handle("/api/todolists", protected(h.TodoLists.ListTodoLists)).Methods(http.MethodGet)
	r.Handle("/api/todolists", protected(h.TodoLists.CreateTodoList)).Methods(http.MethodPost)
	r.Handle("/api/todolists/{id:[0-9]+}", protected(h.TodoLists.GetTodoList)).Methods(http.MethodGet)
	r.Handle("/api/todolists/{id:[0-9]+}/tasks", protected(h.Tasks.AddTask)).Methods(http.MethodPost)
	r.Handle("/api/tasks/{id:[0-9]+}/toggle", protected(h.Tasks.ToggleTask)).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)

	return r
}

// NewHandler wraps the router with CORS and request logging.
func NewHandler(router http.Handler, log zerolog.Logger, allowedOrigin string) http.Handler {
	return middleware.SetupCORS(allowedOrigin)(middleware.LoggingMiddleware(log)(router))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "Not found"})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusMethodNotAllowed, api.ErrorResponse{Error: "Method not allowed"})
}
