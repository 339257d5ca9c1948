package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priorities, shared with notifications.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task belongs to its creating user. AssignedTo is deliberately a raw
// email string rather than a user reference so tasks can be assigned to
// addresses that have not registered yet; resolution to a user happens
// only when a notification is produced.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Priority    string             `bson:"priority" json:"priority"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	AssignedTo  string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	Owner       primitive.ObjectID `bson:"user" json:"user"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
