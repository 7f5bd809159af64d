package task

import (
	"context"
	"errors"
	"strings"

	"todo-app/db"
	"todo-app/internal/apperror"
	"todo-app/models"
)

type TaskService struct {
	lists db.TodoListRepository
	tasks db.TaskRepository
}

func NewTaskService(lists db.TodoListRepository, tasks db.TaskRepository) *TaskService {
	return &TaskService{lists: lists, tasks: tasks}
}

// AddTask inserts a task into a list owned by userID. The title is checked
// before ownership, and nothing is written when the list is not owned.
func (s *TaskService) AddTask(ctx context.Context, userID, listID int64, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("Task title is required")
	}

	if _, err := s.lists.FindByIDForUser(ctx, listID, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.NotFound("Todo list not found")
		}
		return nil, apperror.Store(err)
	}

	task, err := s.tasks.Create(ctx, &models.Task{
		TodoListID:  listID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return task, nil
}

// ToggleTask flips the completed flag. A task that does not exist and one in
// another user's list both report not found.
func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.tasks.ToggleForUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.NotFound("Task not found")
		}
		return nil, apperror.Store(err)
	}
	return task, nil
}
