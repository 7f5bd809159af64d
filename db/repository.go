package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"todo-app/internal/config"
	"todo-app/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	// Create inserts the user and assigns its ID. Returns ErrDuplicate when
	// the username or email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TodoListRepository defines the interface for todo list operations
type TodoListRepository interface {
	Create(ctx context.Context, list *models.TodoList) (*models.TodoList, error)
	// FindAllByUserID returns the user's lists, newest first.
	FindAllByUserID(ctx context.Context, userID int64) ([]*models.TodoList, error)
	// FindByIDForUser returns ErrNotFound unless the list exists and is
	// owned by userID.
	FindByIDForUser(ctx context.Context, id, userID int64) (*models.TodoList, error)
}

// TaskRepository defines the interface for task operations
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	// FindAllByTodoListID returns the list's tasks, newest first.
	FindAllByTodoListID(ctx context.Context, todoListID int64) ([]*models.Task, error)
	// ToggleForUser flips the completed flag of the task if it belongs to a
	// list owned by userID, and returns ErrNotFound otherwise.
	ToggleForUser(ctx context.Context, id, userID int64) (*models.Task, error)
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLDB       *sql.DB
	Dialect     Dialect
	MongoClient *mongo.Client
	DBName      string
}

// NewRepositoryFactory creates a new repository factory. Exactly one of
// sqlDB and mongoClient is expected to be set.
func NewRepositoryFactory(sqlDB *sql.DB, dialect Dialect, mongoClient *mongo.Client, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLDB:       sqlDB,
		Dialect:     dialect,
		MongoClient: mongoClient,
		DBName:      dbName,
	}
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (*RepositoryFactory, error) {
	switch cfg.DatabaseType {
	case config.SQLite:
		sqlDB, err := ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := InitializeSchema(ctx, sqlDB, DialectSQLite); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return NewRepositoryFactory(sqlDB, DialectSQLite, nil, cfg.DatabaseName), nil
	case config.Postgres:
		sqlDB, err := ConnectToPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := InitializeSchema(ctx, sqlDB, DialectPostgres); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return NewRepositoryFactory(sqlDB, DialectPostgres, nil, cfg.DatabaseName), nil
	case config.MongoDB:
		client, err := ConnectToMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		if err := EnsureMongoIndexes(ctx, client.Database(cfg.DatabaseName)); err != nil {
			client.Disconnect(ctx)
			return nil, err
		}
		return NewRepositoryFactory(nil, 0, client, cfg.DatabaseName), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	if f.SQLDB != nil {
		return NewSQLUserRepository(f.SQLDB, f.Dialect)
	}
	return NewMongoUserRepository(f.MongoClient.Database(f.DBName))
}

// NewTodoListRepository creates a new todo list repository
func (f *RepositoryFactory) NewTodoListRepository() TodoListRepository {
	if f.SQLDB != nil {
		return NewSQLTodoListRepository(f.SQLDB, f.Dialect)
	}
	return NewMongoTodoListRepository(f.MongoClient.Database(f.DBName))
}

// NewTaskRepository creates a new task repository
func (f *RepositoryFactory) NewTaskRepository() TaskRepository {
	if f.SQLDB != nil {
		return NewSQLTaskRepository(f.SQLDB, f.Dialect)
	}
	return NewMongoTaskRepository(f.MongoClient.Database(f.DBName))
}

// Close releases the underlying connection pool
func (f *RepositoryFactory) Close(ctx context.Context) error {
	if f.SQLDB != nil {
		return f.SQLDB.Close()
	}
	if f.MongoClient != nil {
		return f.MongoClient.Disconnect(ctx)
	}
	return nil
}
