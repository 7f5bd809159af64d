package todolist

import (
	"context"
	"errors"
	"strings"

	"todo-app/db"
	"todo-app/internal/apperror"
	"todo-app/models"
)

type TodoListService struct {
	lists db.TodoListRepository
	tasks db.TaskRepository
}

func NewTodoListService(lists db.TodoListRepository, tasks db.TaskRepository) *TodoListService {
	return &TodoListService{lists: lists, tasks: tasks}
}

// ListTodoLists returns the lists owned by userID, newest first
func (s *TodoListService) ListTodoLists(ctx context.Context, userID int64) ([]*models.TodoList, error) {
	lists, err := s.lists.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return lists, nil
}

func (s *TodoListService) CreateTodoList(ctx context.Context, userID int64, title, description string) (*models.TodoList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	list, err := s.lists.Create(ctx, &models.TodoList{
		UserID:      userID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return list, nil
}

// GetTodoListWithTasks returns the list and its tasks. Lists owned by other
// users are reported as not found.
func (s *TodoListService) GetTodoListWithTasks(ctx context.Context, userID, listID int64) (*models.TodoListWithTasks, error) {
	list, err := s.lists.FindByIDForUser(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperror.NotFound("Todo list not found")
		}
		return nil, apperror.Store(err)
	}

	tasks, err := s.tasks.FindAllByTodoListID(ctx, list.ID)
	if err != nil {
		return nil, apperror.Store(err)
	}

	return &models.TodoListWithTasks{TodoList: *list, Tasks: tasks}, nil
}
