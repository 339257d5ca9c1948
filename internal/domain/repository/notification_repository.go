package repository

import (
	"context"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
)

// NotificationRepository is the store adapter for notification records.
// Every operation is scoped by the recipient user id; callers must pass
// the authenticated user's id, never unchecked request input.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByRecipient returns notifications newest first.
	ListByRecipient(ctx context.Context, recipient string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, recipient string) (*entity.Notification, error)
	// MarkAllRead is a no-op when nothing is unread.
	MarkAllRead(ctx context.Context, recipient string) error
	Delete(ctx context.Context, id, recipient string) error
	DeleteAllForRecipient(ctx context.Context, recipient string) error
	InsertMany(ctx context.Context, ns []*entity.Notification) error
}
