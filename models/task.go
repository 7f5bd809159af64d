package models

import "time"

// Task represents an item inside a todo list
type Task struct {
	ID          int64     `json:"id" bson:"_id"`
	TodoListID  int64     `json:"todo_list_id" bson:"todo_list_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
