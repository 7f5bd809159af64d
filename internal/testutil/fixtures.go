package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-app/db"
	"todo-app/models"
)

const TestPassword = "pw"

// CreateTestUser inserts a user whose password is TestPassword
func CreateTestUser(t *testing.T, repo db.UserRepository, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := repo.Create(context.Background(), &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hash),
	})
	require.NoError(t, err)
	return user
}

func CreateTestTodoList(t *testing.T, repo db.TodoListRepository, userID int64, title string) *models.TodoList {
	t.Helper()

	list, err := repo.Create(context.Background(), &models.TodoList{
		UserID: userID,
		Title:  title,
	})
	require.NoError(t, err)
	return list
}

func CreateTestTask(t *testing.T, repo db.TaskRepository, todoListID int64, title string) *models.Task {
	t.Helper()

	task, err := repo.Create(context.Background(), &models.Task{
		TodoListID: todoListID,
		Title:      title,
	})
	require.NoError(t, err)
	return task
}
