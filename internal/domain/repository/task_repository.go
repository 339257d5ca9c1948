package repository

import (
	"context"
	"time"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
)

// TaskUpdate carries the mutable task fields for a partial update;
// nil pointers leave the stored value untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
	Priority    *string
	Category    *string
	Tags        *[]string
	AssignedTo  *string
}

// TaskFilter narrows ListByOwner; zero values are ignored.
type TaskFilter struct {
	DueBefore *time.Time
	Priority  string
}

// TaskRepository defines task document store operations. Mutations are
// scoped by the owning user id except UpdateStatus, which also admits
// the assignee.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	ListByOwner(ctx context.Context, owner string, f TaskFilter) ([]*entity.Task, error)
	ListAssigned(ctx context.Context, email string) ([]*entity.Task, error)
	ListDeleted(ctx context.Context, owner string) ([]*entity.Task, error)
	Update(ctx context.Context, id, owner string, upd TaskUpdate) (*entity.Task, error)
	UpdateStatus(ctx context.Context, id, actorID, actorEmail, status string) (*entity.Task, error)
	SoftDelete(ctx context.Context, id, owner string) error
	Restore(ctx context.Context, id, owner string) (*entity.Task, error)
	RestoreAll(ctx context.Context, owner string) (int64, error)
	DeletePermanent(ctx context.Context, id, owner string) error
	DeleteAllDeleted(ctx context.Context, owner string) (int64, error)

	// Reminder sweep queries: non-deleted, not completed, due strictly
	// before the cutoff.
	ListDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Task, error)
	ListDueBeforeForOwner(ctx context.Context, owner string, cutoff time.Time) ([]*entity.Task, error)

	// Bulk operations for account deletion and data import.
	DeleteAllForOwner(ctx context.Context, owner string) error
	InsertMany(ctx context.Context, tasks []*entity.Task) error
}
