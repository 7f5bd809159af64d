package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-app/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// SQLUserRepository implements the UserRepository interface for SQLite and Postgres
type SQLUserRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLUserRepository creates a new SQLUserRepository
func NewSQLUserRepository(db *sql.DB, dialect Dialect) *SQLUserRepository {
	return &SQLUserRepository{db: db, dialect: dialect}
}

const userColumns = `id, username, email, password, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *SQLUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = timestamp()
	}

	query := r.dialect.rebind(`INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.Password, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

// FindByUsername finds a user by username
func (r *SQLUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

// SQLTodoListRepository implements the TodoListRepository interface for SQLite and Postgres
type SQLTodoListRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLTodoListRepository creates a new SQLTodoListRepository
func NewSQLTodoListRepository(db *sql.DB, dialect Dialect) *SQLTodoListRepository {
	return &SQLTodoListRepository{db: db, dialect: dialect}
}

const todoListColumns = `id, user_id, title, description, created_at`

func scanTodoList(row rowScanner) (*models.TodoList, error) {
	var list models.TodoList
	var description sql.NullString

	err := row.Scan(&list.ID, &list.UserID, &list.Title, &description, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning todo list: %w", err)
	}

	if description.Valid {
		list.Description = description.String
	}
	return &list, nil
}

// Create inserts a new todo list
func (r *SQLTodoListRepository) Create(ctx context.Context, list *models.TodoList) (*models.TodoList, error) {
	if list.CreatedAt.IsZero() {
		list.CreatedAt = timestamp()
	}

	query := r.dialect.rebind(`INSERT INTO todo_lists (user_id, title, description, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, list.UserID, list.Title, list.Description, list.CreatedAt).Scan(&list.ID)
	if err != nil {
		return nil, fmt.Errorf("error inserting todo list: %w", err)
	}
	return list, nil
}

// FindAllByUserID finds all lists owned by a user, newest first
func (r *SQLTodoListRepository) FindAllByUserID(ctx context.Context, userID int64) ([]*models.TodoList, error) {
	query := r.dialect.rebind(`SELECT ` + todoListColumns + ` FROM todo_lists WHERE user_id = ? ORDER BY created_at DESC, id DESC`)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying todo lists: %w", err)
	}
	defer rows.Close()

	lists := []*models.TodoList{}
	for rows.Next() {
		list, err := scanTodoList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo lists: %w", err)
	}

	return lists, nil
}

// FindByIDForUser finds a list by ID if it is owned by userID
func (r *SQLTodoListRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*models.TodoList, error) {
	query := r.dialect.rebind(`SELECT ` + todoListColumns + ` FROM todo_lists WHERE id = ? AND user_id = ?`)
	return scanTodoList(r.db.QueryRowContext(ctx, query, id, userID))
}

// SQLTaskRepository implements the TaskRepository interface for SQLite and Postgres
type SQLTaskRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLTaskRepository creates a new SQLTaskRepository
func NewSQLTaskRepository(db *sql.DB, dialect Dialect) *SQLTaskRepository {
	return &SQLTaskRepository{db: db, dialect: dialect}
}

const taskColumns = `id, todo_list_id, title, description, completed, created_at`

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var description sql.NullString

	err := row.Scan(&task.ID, &task.TodoListID, &task.Title, &description, &task.Completed, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning task: %w", err)
	}

	if description.Valid {
		task.Description = description.String
	}
	return &task, nil
}

// Create inserts a new task
func (r *SQLTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = timestamp()
	}

	query := r.dialect.rebind(`INSERT INTO tasks (todo_list_id, title, description, completed, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, task.TodoListID, task.Title, task.Description, task.Completed, task.CreatedAt).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("error inserting task: %w", err)
	}
	return task, nil
}

// FindByID finds a task by ID
func (r *SQLTaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := r.dialect.rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

// FindAllByTodoListID finds all tasks of a list, newest first
func (r *SQLTaskRepository) FindAllByTodoListID(ctx context.Context, todoListID int64) ([]*models.Task, error) {
	query := r.dialect.rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE todo_list_id = ? ORDER BY created_at DESC, id DESC`)
	rows, err := r.db.QueryContext(ctx, query, todoListID)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// ToggleForUser flips the completed flag in a single ownership-scoped UPDATE
func (r *SQLTaskRepository) ToggleForUser(ctx context.Context, id, userID int64) (*models.Task, error) {
	query := r.dialect.rebind(`UPDATE tasks SET completed = NOT completed
		WHERE id = ? AND todo_list_id IN (SELECT id FROM todo_lists WHERE user_id = ?)`)
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("error toggling task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading toggle result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(ctx, id)
}
