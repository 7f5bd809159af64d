package task

import (
	"net/http"

	"todo-app/internal/api"
	"todo-app/internal/auth"
)

type AddTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TaskHandlers struct {
	Service *TaskService
}

func NewTaskHandlers(service *TaskService) *TaskHandlers {
	return &TaskHandlers{Service: service}
}

func (h *TaskHandlers) AddTask(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	var req AddTaskRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	listID, err := api.PathID(r, "id", "Todo list not found")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	task, err := h.Service.AddTask(r.Context(), userID, listID, req.Title, req.Description)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	taskID, err := api.PathID(r, "id", "Task not found")
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	task, err := h.Service.ToggleTask(r.Context(), userID, taskID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, task)
}
