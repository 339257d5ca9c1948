package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationSystem   = "system"
	NotificationTask     = "task"
	NotificationReminder = "reminder"
	NotificationUpdate   = "update"
)

// Notification is owned by its recipient; the recipient id scopes every
// read and mutation. Only the Read flag changes after creation.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient primitive.ObjectID `bson:"user" json:"user"`
	Type      string             `bson:"type" json:"type"`
	Priority  string             `bson:"priority" json:"priority"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
