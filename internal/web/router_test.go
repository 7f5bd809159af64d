package web

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/internal/auth"
	"todo-app/internal/task"
	"todo-app/internal/testutil"
	"todo-app/internal/todolist"
	"todo-app/middleware"
	"todo-app/models"
)

func newTestServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	factory := testutil.SetupTestRepositoryFactory(t)
	cfg := testutil.GetTestConfig()

	userRepo := factory.NewUserRepository()
	listRepo := factory.NewTodoListRepository()
	taskRepo := factory.NewTaskRepository()

	tokens := auth.NewTokenIssuer(cfg.JwtKey, cfg.TokenTTL)
	authService := auth.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	handlers := &Handlers{
		Auth:       auth.NewAuthHandlers(authService),
		TodoLists:  todolist.NewTodoListHandlers(todolist.NewTodoListService(listRepo, taskRepo)),
		Tasks:      task.NewTaskHandlers(task.NewTaskService(listRepo, taskRepo)),
		Middleware: middleware.NewMiddleware(authService),
	}

	return testutil.NewTestServer(t, NewHandler(handlers.SetupRoutes(), zerolog.Nop(), cfg.CORSAllowedOrigin))
}

func register(t *testing.T, server *testutil.TestServer, username string) auth.AuthResult {
	t.Helper()
	var result auth.AuthResult
	resp := server.POST("/api/register", "", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "pw",
	})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &result)
	require.NotEmpty(t, result.Token)
	return result
}

func TestRouter_ExampleFlow(t *testing.T) {
	server := newTestServer(t)

	alice := register(t, server, "alice")
	assert.Equal(t, "alice", alice.User.Username)
	assert.Equal(t, "alice@x.com", alice.User.Email)

	var list models.TodoList
	resp := server.POST("/api/todolists", alice.Token, map[string]string{"title": "Groceries"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &list)
	assert.Equal(t, int64(1), list.ID)
	assert.Equal(t, "Groceries", list.Title)
	assert.Equal(t, "", list.Description)
	assert.Equal(t, alice.User.ID, list.UserID)

	var created models.Task
	resp = server.POST("/api/todolists/1/tasks", alice.Token, map[string]string{"title": "Milk"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)

	var toggled models.Task
	resp = server.PUT("/api/tasks/1/toggle", alice.Token, nil)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &toggled)
	assert.True(t, toggled.Completed)

	resp = server.PUT("/api/tasks/1/toggle", alice.Token, nil)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &toggled)
	assert.False(t, toggled.Completed)

	var withTasks models.TodoListWithTasks
	resp = server.GET("/api/todolists/1", alice.Token)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &withTasks)
	assert.Equal(t, "Groceries", withTasks.Title)
	require.Len(t, withTasks.Tasks, 1)
	assert.Equal(t, "Milk", withTasks.Tasks[0].Title)

	var lists []models.TodoList
	resp = server.GET("/api/todolists", alice.Token)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &lists)
	require.Len(t, lists, 1)

	var loggedIn auth.AuthResult
	resp = server.POST("/api/login", "", map[string]string{"username": "alice", "password": "pw"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &loggedIn)
	assert.Equal(t, alice.User, loggedIn.User)
}

func TestRouter_AuthErrors(t *testing.T) {
	server := newTestServer(t)
	register(t, server, "alice")

	t.Run("DuplicateRegistration", func(t *testing.T) {
		resp := server.POST("/api/register", "", map[string]string{"username": "alice", "email": "new@x.com", "password": "pw"})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "already exists")
	})

	t.Run("RegisterMissingFields", func(t *testing.T) {
		resp := server.POST("/api/register", "", map[string]string{"username": "bob"})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "All fields are required")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp := server.POST("/api/login", "", "not an object")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request format")
	})

	t.Run("BadCredentials", func(t *testing.T) {
		resp := server.POST("/api/login", "", map[string]string{"username": "alice", "password": "wrong"})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid credentials")
	})

	t.Run("MissingToken", func(t *testing.T) {
		resp := server.GET("/api/todolists", "")
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Access token required")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		resp := server.GET("/api/todolists", "forged")
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Invalid token")
	})
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice")
	bob := register(t, server, "bob")

	var list models.TodoList
	resp := server.POST("/api/todolists", alice.Token, map[string]string{"title": "Private", "description": "alice only"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &list)
	assert.Equal(t, "alice only", list.Description)

	var secret models.Task
	resp = server.POST("/api/todolists/1/tasks", alice.Token, map[string]string{"title": "Secret"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &secret)

	var bobLists []models.TodoList
	resp = server.GET("/api/todolists", bob.Token)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &bobLists)
	assert.Empty(t, bobLists)

	resp = server.GET("/api/todolists/1", bob.Token)
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Todo list not found")

	resp = server.POST("/api/todolists/1/tasks", bob.Token, map[string]string{"title": "Intrusion"})
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Todo list not found")

	resp = server.PUT("/api/tasks/1/toggle", bob.Token, nil)
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Task not found")

	var withTasks models.TodoListWithTasks
	resp = server.GET("/api/todolists/1", alice.Token)
	testutil.AssertJSONResponse(t, resp, http.StatusOK, &withTasks)
	require.Len(t, withTasks.Tasks, 1)
	assert.False(t, withTasks.Tasks[0].Completed)
}

func TestRouter_Validation(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice")

	resp := server.POST("/api/todolists", alice.Token, map[string]string{"description": "no title"})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Title is required")

	resp = server.POST("/api/todolists", alice.Token, map[string]string{"title": "Groceries"})
	testutil.AssertJSONResponse(t, resp, http.StatusOK, nil)

	resp = server.POST("/api/todolists/1/tasks", alice.Token, map[string]string{"title": ""})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Task title is required")

	resp = server.POST("/api/todolists/42/tasks", alice.Token, map[string]string{"title": "Milk"})
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Todo list not found")
}

func TestRouter_Fallbacks(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice")

	t.Run("NonNumericID", func(t *testing.T) {
		resp := server.GET("/api/todolists/abc", alice.Token)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Not found")
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		resp := server.GET("/api/nothing", "")
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Not found")
	})

	t.Run("WrongMethod", func(t *testing.T) {
		cases := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/register"},
			{http.MethodGet, "/api/login"},
			{http.MethodDelete, "/api/todolists"},
			{http.MethodPut, "/api/todolists/1"},
			{http.MethodGet, "/api/todolists/1/tasks"},
			{http.MethodGet, "/api/tasks/1/toggle"},
		}
		for _, tc := range cases {
			t.Run(tc.method+" "+tc.path, func(t *testing.T) {
				resp := server.Do(tc.method, tc.path, alice.Token, nil)
				testutil.AssertErrorResponse(t, resp, http.StatusMethodNotAllowed, "Method not allowed")
			})
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		resp := server.Do(http.MethodOptions, "/api/todolists", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
