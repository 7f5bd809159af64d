package todolist

import (
	"net/http"

	"todo-app/internal/api"
	"todo-app/internal/auth"
)

type CreateTodoListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TodoListHandlers struct {
	Service *TodoListService
}

func NewTodoListHandlers(service *TodoListService) *TodoListHandlers {
	return &TodoListHandlers{Service: service}
}

func (h *TodoListHandlers) ListTodoLists(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	lists, err := h.Service.ListTodoLists(r.Context(), userID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, lists)
}

func (h *TodoListHandlers) CreateTodoList(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	var req CreateTodoListRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	list, err := h.Service.CreateTodoList(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, list)
}

func (h *TodoListHandlers) GetTodoList(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	listID, err := api.PathID(r, "id", "Todo list not found")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	list, err := h.Service.GetTodoListWithTasks(r.Context(), userID, listID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, list)
}
