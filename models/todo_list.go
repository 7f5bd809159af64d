package models

import "time"

// TodoList represents a list owned by a single user
type TodoList struct {
	ID          int64     `json:"id" bson:"_id"`
	UserID      int64     `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// TodoListWithTasks is a list together with all of its tasks, newest first
type TodoListWithTasks struct {
	TodoList
	Tasks []*Task `json:"tasks"`
}
