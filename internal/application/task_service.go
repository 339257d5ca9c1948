package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	repo "github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

// TaskService orchestrates task writes and fans the resulting events
// out to the notifier. Notification failures never surface to the
// caller; the task write is the source of truth.
type TaskService struct {
	Tasks    repo.TaskRepository
	Notifier *Notifier
	Logger   *logrus.Logger
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	Priority    string
	Category    string
	Tags        []string
	AssignedTo  string
}

// Create stores the task for actorID and notifies the assignee when
// the task was created already assigned to someone else.
func (s *TaskService) Create(ctx context.Context, actorID, actorEmail string, in CreateTaskInput) (*entity.Task, error) {
	oid, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	t := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Category:    in.Category,
		Tags:        in.Tags,
		AssignedTo:  entity.NormalizeEmail(in.AssignedTo),
		Owner:       oid,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	if s.Notifier != nil && t.AssignedTo != "" {
		s.Notifier.TaskAssigned(ctx, actorEmail, t)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, owner string, f repo.TaskFilter) ([]*entity.Task, error) {
	return s.Tasks.ListByOwner(ctx, owner, f)
}

// ListAssigned returns active tasks assigned to the given email,
// regardless of owner.
func (s *TaskService) ListAssigned(ctx context.Context, email string) ([]*entity.Task, error) {
	return s.Tasks.ListAssigned(ctx, entity.NormalizeEmail(email))
}

func (s *TaskService) ListDeleted(ctx context.Context, owner string) ([]*entity.Task, error) {
	return s.Tasks.ListDeleted(ctx, owner)
}

// Update applies a partial update to the actor's own task and notifies
// the assignee, if any, that their task changed.
func (s *TaskService) Update(ctx context.Context, id, actorID, actorEmail string, upd repo.TaskUpdate) (*entity.Task, error) {
	if upd.AssignedTo != nil {
		normalized := entity.NormalizeEmail(*upd.AssignedTo)
		upd.AssignedTo = &normalized
	}
	t, err := s.Tasks.Update(ctx, id, actorID, upd)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil && t.AssignedTo != "" {
		s.Notifier.TaskUpdated(ctx, actorEmail, t)
	}
	return t, nil
}

// UpdateStatus moves a task to a new status. The owner or the assignee
// may do this; when the assignee does, the owner is notified.
func (s *TaskService) UpdateStatus(ctx context.Context, id, actorID, actorEmail, status string) (*entity.Task, error) {
	t, err := s.Tasks.UpdateStatus(ctx, id, actorID, entity.NormalizeEmail(actorEmail), status)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		s.Notifier.StatusChanged(ctx, actorID, actorEmail, t)
	}
	return t, nil
}

func (s *TaskService) SoftDelete(ctx context.Context, id, owner string) error {
	return s.Tasks.SoftDelete(ctx, id, owner)
}

func (s *TaskService) Restore(ctx context.Context, id, owner string) (*entity.Task, error) {
	return s.Tasks.Restore(ctx, id, owner)
}

func (s *TaskService) RestoreAll(ctx context.Context, owner string) (int64, error) {
	return s.Tasks.RestoreAll(ctx, owner)
}

func (s *TaskService) DeletePermanent(ctx context.Context, id, owner string) error {
	return s.Tasks.DeletePermanent(ctx, id, owner)
}

func (s *TaskService) DeleteAllDeleted(ctx context.Context, owner string) (int64, error) {
	return s.Tasks.DeleteAllDeleted(ctx, owner)
}
