package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/internal/apperror"
	"todo-app/internal/testutil"
)

func TestTaskService(t *testing.T) {
	factory := testutil.SetupTestRepositoryFactory(t)
	userRepo := factory.NewUserRepository()
	listRepo := factory.NewTodoListRepository()
	taskRepo := factory.NewTaskRepository()
	service := NewTaskService(listRepo, taskRepo)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, userRepo, "alice")
	bob := testutil.CreateTestUser(t, userRepo, "bob")
	groceries := testutil.CreateTestTodoList(t, listRepo, alice.ID, "Groceries")

	t.Run("AddTask", func(t *testing.T) {
		task, err := service.AddTask(ctx, alice.ID, groceries.ID, "Milk", "2 litres")
		require.NoError(t, err)
		assert.Positive(t, task.ID)
		assert.Equal(t, groceries.ID, task.TodoListID)
		assert.Equal(t, "2 litres", task.Description)
		assert.False(t, task.Completed)
	})

	t.Run("AddTaskRequiresTitle", func(t *testing.T) {
		_, err := service.AddTask(ctx, alice.ID, groceries.ID, "", "")
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		// Title is checked before ownership.
		_, err = service.AddTask(ctx, bob.ID, groceries.ID, "", "")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("AddTaskToForeignOrMissingList", func(t *testing.T) {
		before, err := taskRepo.FindAllByTodoListID(ctx, groceries.ID)
		require.NoError(t, err)

		_, err = service.AddTask(ctx, bob.ID, groceries.ID, "Sneaky", "")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))

		_, err = service.AddTask(ctx, alice.ID, 9999, "Lost", "")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))

		after, err := taskRepo.FindAllByTodoListID(ctx, groceries.ID)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("ToggleTwiceRestores", func(t *testing.T) {
		task, err := service.AddTask(ctx, alice.ID, groceries.ID, "Bread", "")
		require.NoError(t, err)

		toggled, err := service.ToggleTask(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)

		toggled, err = service.ToggleTask(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Completed, toggled.Completed)
	})

	t.Run("ToggleForeignAndMissingCollapse", func(t *testing.T) {
		task, err := service.AddTask(ctx, alice.ID, groceries.ID, "Butter", "")
		require.NoError(t, err)

		_, errForeign := service.ToggleTask(ctx, bob.ID, task.ID)
		_, errMissing := service.ToggleTask(ctx, bob.ID, 9999)

		assert.True(t, apperror.Is(errForeign, apperror.KindNotFound))
		assert.True(t, apperror.Is(errMissing, apperror.KindNotFound))
		assert.Equal(t, errMissing.Error(), errForeign.Error())
	})
}
