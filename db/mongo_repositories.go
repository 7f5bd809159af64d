package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todo-app/models"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// MongoUserRepository implements the UserRepository interface for MongoDB
type MongoUserRepository struct {
	database *mongo.Database
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{database: database}
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = timestamp()
	}

	id, err := nextID(ctx, r.database, usersCollection)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if _, err := r.database.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.database.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

// MongoTodoListRepository implements the TodoListRepository interface for MongoDB
type MongoTodoListRepository struct {
	database *mongo.Database
}

// NewMongoTodoListRepository creates a new MongoTodoListRepository
func NewMongoTodoListRepository(database *mongo.Database) *MongoTodoListRepository {
	return &MongoTodoListRepository{database: database}
}

// Create inserts a new todo list
func (r *MongoTodoListRepository) Create(ctx context.Context, list *models.TodoList) (*models.TodoList, error) {
	if list.CreatedAt.IsZero() {
		list.CreatedAt = timestamp()
	}

	id, err := nextID(ctx, r.database, todoListsCollection)
	if err != nil {
		return nil, err
	}
	list.ID = id

	if _, err := r.database.Collection(todoListsCollection).InsertOne(ctx, list); err != nil {
		return nil, fmt.Errorf("error inserting todo list: %w", err)
	}
	return list, nil
}

// FindAllByUserID finds all lists owned by a user, newest first
func (r *MongoTodoListRepository) FindAllByUserID(ctx context.Context, userID int64) ([]*models.TodoList, error) {
	cursor, err := r.database.Collection(todoListsCollection).
		Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("error querying todo lists: %w", err)
	}
	defer cursor.Close(ctx)

	lists := []*models.TodoList{}
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("error decoding todo lists: %w", err)
	}
	return lists, nil
}

// FindByIDForUser finds a list by ID if it is owned by userID
func (r *MongoTodoListRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*models.TodoList, error) {
	var list models.TodoList
	err := r.database.Collection(todoListsCollection).
		FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding todo list: %w", err)
	}
	return &list, nil
}

// MongoTaskRepository implements the TaskRepository interface for MongoDB
type MongoTaskRepository struct {
	database *mongo.Database
}

// NewMongoTaskRepository creates a new MongoTaskRepository
func NewMongoTaskRepository(database *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{database: database}
}

// Create inserts a new task
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = timestamp()
	}

	id, err := nextID(ctx, r.database, tasksCollection)
	if err != nil {
		return nil, err
	}
	task.ID = id

	if _, err := r.database.Collection(tasksCollection).InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("error inserting task: %w", err)
	}
	return task, nil
}

// FindByID finds a task by ID
func (r *MongoTaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := r.database.Collection(tasksCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding task: %w", err)
	}
	return &task, nil
}

// FindAllByTodoListID finds all tasks of a list, newest first
func (r *MongoTaskRepository) FindAllByTodoListID(ctx context.Context, todoListID int64) ([]*models.Task, error) {
	cursor, err := r.database.Collection(tasksCollection).
		Find(ctx, bson.M{"todo_list_id": todoListID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("error decoding tasks: %w", err)
	}
	return tasks, nil
}

// ToggleForUser flips the completed flag with an aggregation-pipeline update
// restricted to lists owned by userID
func (r *MongoTaskRepository) ToggleForUser(ctx context.Context, id, userID int64) (*models.Task, error) {
	listIDs, err := r.database.Collection(todoListsCollection).Distinct(ctx, "_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("error querying owned lists: %w", err)
	}
	if len(listIDs) == 0 {
		return nil, ErrNotFound
	}

	filter := bson.M{"_id": id, "todo_list_id": bson.M{"$in": listIDs}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err = r.database.Collection(tasksCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error toggling task: %w", err)
	}
	return &task, nil
}
