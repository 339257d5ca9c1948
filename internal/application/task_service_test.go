package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

type fakeTaskStore struct {
	repository.TaskRepository
	created []*entity.Task
	updated *entity.Task
}

func (f *fakeTaskStore) Create(_ context.Context, t *entity.Task) error {
	t.ID = primitive.NewObjectID()
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, id, owner string, upd repository.TaskUpdate) (*entity.Task, error) {
	if f.updated == nil {
		return nil, repository.ErrNotFound
	}
	if upd.AssignedTo != nil {
		f.updated.AssignedTo = *upd.AssignedTo
	}
	if upd.Title != nil {
		f.updated.Title = *upd.Title
	}
	return f.updated, nil
}

func newTestTaskService(store *fakeTaskStore, users *fakeUsers, notes *fakeNotifications) *TaskService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	notifier := NewNotifier(notes, store, users, &fakeSettings{}, &fakeRelay{online: true}, logger)
	return &TaskService{Tasks: store, Notifier: notifier, Logger: logger}
}

func TestCreateNormalizesAssigneeAndNotifies(t *testing.T) {
	bob := &entity.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	users := &fakeUsers{byEmail: map[string]*entity.User{"bob@example.com": bob}}
	store := &fakeTaskStore{}
	notes := &fakeNotifications{}
	svc := newTestTaskService(store, users, notes)

	actor := primitive.NewObjectID()
	task, err := svc.Create(context.Background(), actor.Hex(), "alice@example.com", CreateTaskInput{
		Title:      "Ship it",
		AssignedTo: "  Bob@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", task.AssignedTo)
	assert.Equal(t, actor, task.Owner)

	require.Len(t, notes.created, 1)
	assert.Equal(t, bob.ID, notes.created[0].Recipient)
	assert.Equal(t, entity.NotificationTask, notes.created[0].Type)
}

func TestCreateUnassignedIsSilent(t *testing.T) {
	store := &fakeTaskStore{}
	notes := &fakeNotifications{}
	svc := newTestTaskService(store, &fakeUsers{}, notes)

	_, err := svc.Create(context.Background(), primitive.NewObjectID().Hex(), "alice@example.com", CreateTaskInput{Title: "Solo"})
	require.NoError(t, err)
	assert.Empty(t, notes.created)
}

func TestCreateRejectsMalformedActorID(t *testing.T) {
	svc := newTestTaskService(&fakeTaskStore{}, &fakeUsers{}, &fakeNotifications{})
	_, err := svc.Create(context.Background(), "not-an-id", "a@b.com", CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateNotifiesAssignee(t *testing.T) {
	bob := &entity.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	users := &fakeUsers{byEmail: map[string]*entity.User{"bob@example.com": bob}}
	existing := &entity.Task{
		ID:         primitive.NewObjectID(),
		Title:      "Draft",
		AssignedTo: "bob@example.com",
		Owner:      primitive.NewObjectID(),
	}
	store := &fakeTaskStore{updated: existing}
	notes := &fakeNotifications{}
	svc := newTestTaskService(store, users, notes)

	title := "Final"
	got, err := svc.Update(context.Background(), existing.ID.Hex(), existing.Owner.Hex(), "alice@example.com", repository.TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)

	require.Len(t, notes.created, 1)
	assert.Equal(t, "Task Updated", notes.created[0].Title)
	assert.Equal(t, `Task "Final" assigned to you has been updated.`, notes.created[0].Message)
}

func TestUpdateMissingTaskIs404(t *testing.T) {
	svc := newTestTaskService(&fakeTaskStore{}, &fakeUsers{}, &fakeNotifications{})
	title := "x"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), "a@b.com", repository.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
