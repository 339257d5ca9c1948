package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

type fakeUsers struct {
	byEmail map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error { return nil }
func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) Update(_ context.Context, u *entity.User) error { return nil }
func (f *fakeUsers) Delete(_ context.Context, id string) error      { return nil }
func (f *fakeUsers) List(_ context.Context) ([]*entity.User, error) { return nil, nil }

type fakeTasks struct {
	repository.TaskRepository
	due []*entity.Task
}

func (f *fakeTasks) ListDueBefore(_ context.Context, _ time.Time) ([]*entity.Task, error) {
	return f.due, nil
}

func (f *fakeTasks) ListDueBeforeForOwner(_ context.Context, owner string, _ time.Time) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range f.due {
		if t.Owner.Hex() == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	repository.NotificationRepository
	created   []*entity.Notification
	createErr error
}

func (f *fakeNotifications) Create(_ context.Context, n *entity.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

type fakeSettings struct {
	repository.SettingsRepository
	byUser map[string]*entity.UserSettings
}

func (f *fakeSettings) GetByUser(_ context.Context, user string) (*entity.UserSettings, error) {
	s, ok := f.byUser[user]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

type fakeRelay struct {
	delivered map[string]int
	online    bool
}

func (f *fakeRelay) Deliver(userID string, _ interface{}) bool {
	if f.delivered == nil {
		f.delivered = map[string]int{}
	}
	f.delivered[userID]++
	return f.online
}

func newTestNotifier(users *fakeUsers, tasks *fakeTasks, notes *fakeNotifications, settings *fakeSettings, relay *fakeRelay) *Notifier {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewNotifier(notes, tasks, users, settings, relay, logger)
}

func TestTaskAssignedNotifiesAssignee(t *testing.T) {
	bob := &entity.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	users := &fakeUsers{byEmail: map[string]*entity.User{"bob@example.com": bob}}
	notes := &fakeNotifications{}
	relay := &fakeRelay{online: true}
	n := newTestNotifier(users, &fakeTasks{}, notes, &fakeSettings{}, relay)

	task := &entity.Task{Title: "Review PR", AssignedTo: "bob@example.com", Priority: entity.PriorityHigh, Owner: primitive.NewObjectID()}
	n.TaskAssigned(context.Background(), "alice@example.com", task)

	require.Len(t, notes.created, 1)
	got := notes.created[0]
	assert.Equal(t, bob.ID, got.Recipient)
	assert.Equal(t, entity.NotificationTask, got.Type)
	assert.Equal(t, entity.PriorityHigh, got.Priority)
	assert.Equal(t, "New Task Assigned", got.Title)
	assert.Equal(t, `You have been assigned a new task: "Review PR"`, got.Message)
	assert.Equal(t, 1, relay.delivered[bob.ID.Hex()])
}

func TestNotificationPriorityFollowsTask(t *testing.T) {
	bob := &entity.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	cases := []struct {
		name         string
		taskPriority string
		want         string
	}{
		{"low task stays low", entity.PriorityLow, entity.PriorityLow},
		{"high task stays high", entity.PriorityHigh, entity.PriorityHigh},
		{"unset defaults to medium", "", entity.PriorityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &fakeUsers{byEmail: map[string]*entity.User{"bob@example.com": bob}}
			notes := &fakeNotifications{}
			n := newTestNotifier(users, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

			task := &entity.Task{Title: "Triage", AssignedTo: "bob@example.com", Priority: tc.taskPriority, Owner: primitive.NewObjectID()}
			n.TaskAssigned(context.Background(), "alice@example.com", task)
			n.TaskUpdated(context.Background(), "alice@example.com", task)

			require.Len(t, notes.created, 2)
			for _, got := range notes.created {
				assert.Equal(t, tc.want, got.Priority)
			}
		})
	}
}

func TestTaskAssignedToSelfIsSilent(t *testing.T) {
	alice := &entity.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	users := &fakeUsers{byEmail: map[string]*entity.User{"alice@example.com": alice}}
	notes := &fakeNotifications{}
	n := newTestNotifier(users, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	task := &entity.Task{Title: "Solo work", AssignedTo: "Alice@Example.com ", Owner: alice.ID}
	n.TaskAssigned(context.Background(), "alice@example.com", task)

	assert.Empty(t, notes.created)
}

func TestTaskAssignedUnknownEmailIsSilent(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*entity.User{}}
	notes := &fakeNotifications{}
	n := newTestNotifier(users, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	task := &entity.Task{Title: "Orphan", AssignedTo: "ghost@example.com"}
	n.TaskAssigned(context.Background(), "alice@example.com", task)

	assert.Empty(t, notes.created)
}

func TestStatusChangedNotifiesOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	task := &entity.Task{Title: "Deploy", Status: entity.StatusCompleted, Priority: entity.PriorityHigh, Owner: owner}
	n.StatusChanged(context.Background(), primitive.NewObjectID().Hex(), "bob@example.com", task)

	require.Len(t, notes.created, 1)
	got := notes.created[0]
	assert.Equal(t, owner, got.Recipient)
	assert.Equal(t, entity.NotificationUpdate, got.Type)
	assert.Equal(t, entity.PriorityHigh, got.Priority)
	assert.Equal(t, "Task Status Updated", got.Title)
	assert.Equal(t, `Task "Deploy" assigned to bob@example.com was updated to status: completed`, got.Message)
}

func TestStatusChangedByOwnerIsSilent(t *testing.T) {
	owner := primitive.NewObjectID()
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	task := &entity.Task{Title: "Deploy", Status: entity.StatusCompleted, Owner: owner}
	n.StatusChanged(context.Background(), owner.Hex(), "owner@example.com", task)

	assert.Empty(t, notes.created)
}

func TestSendDailyRemindersGroupsByOwner(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	tasks := &fakeTasks{due: []*entity.Task{
		{Owner: alice}, {Owner: alice}, {Owner: bob},
	}}
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, tasks, notes, &fakeSettings{}, &fakeRelay{})

	reminded, err := n.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, reminded)
	require.Len(t, notes.created, 2)

	byRecipient := map[primitive.ObjectID]*entity.Notification{}
	for _, note := range notes.created {
		byRecipient[note.Recipient] = note
		assert.Equal(t, entity.NotificationReminder, note.Type)
		assert.Equal(t, entity.PriorityHigh, note.Priority)
		assert.Equal(t, "Task Due Reminder", note.Title)
	}
	assert.Equal(t, "You have 2 task(s) due today or overdue. Please check your tasks.", byRecipient[alice].Message)
	assert.Equal(t, "You have 1 task(s) due today or overdue. Please check your tasks.", byRecipient[bob].Message)
}

func TestSendDailyRemindersHonorsOptOut(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	tasks := &fakeTasks{due: []*entity.Task{{Owner: alice}, {Owner: bob}}}
	notes := &fakeNotifications{}

	off := false
	settings := &fakeSettings{byUser: map[string]*entity.UserSettings{
		bob.Hex(): {User: bob, Notifications: entity.NotificationPrefs{DailyReminders: &off}},
	}}
	n := newTestNotifier(&fakeUsers{}, tasks, notes, settings, &fakeRelay{})

	reminded, err := n.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reminded)
	require.Len(t, notes.created, 1)
	assert.Equal(t, alice, notes.created[0].Recipient)
}

func TestSendDailyRemindersTreatsUnsetFlagAsEnabled(t *testing.T) {
	alice := primitive.NewObjectID()
	tasks := &fakeTasks{due: []*entity.Task{{Owner: alice}}}
	notes := &fakeNotifications{}

	// Settings document exists but never touched the reminder flag.
	settings := &fakeSettings{byUser: map[string]*entity.UserSettings{
		alice.Hex(): {User: alice},
	}}
	n := newTestNotifier(&fakeUsers{}, tasks, notes, settings, &fakeRelay{})

	reminded, err := n.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reminded)
	require.Len(t, notes.created, 1)
}

func TestSendDailyRemindersCountsOnlyStoredReminders(t *testing.T) {
	alice := primitive.NewObjectID()
	tasks := &fakeTasks{due: []*entity.Task{{Owner: alice}}}
	notes := &fakeNotifications{createErr: errors.New("store down")}
	n := newTestNotifier(&fakeUsers{}, tasks, notes, &fakeSettings{}, &fakeRelay{})

	reminded, err := n.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, reminded)
	assert.Empty(t, notes.created)
}

func TestSendUserDailyReminderSkipsWhenNothingDue(t *testing.T) {
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	err := n.SendUserDailyReminder(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, notes.created)
}

func TestSendUserDailyReminderCountsOwnTasks(t *testing.T) {
	alice := primitive.NewObjectID()
	other := primitive.NewObjectID()
	tasks := &fakeTasks{due: []*entity.Task{{Owner: alice}, {Owner: alice}, {Owner: other}}}
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, tasks, notes, &fakeSettings{}, &fakeRelay{})

	err := n.SendUserDailyReminder(context.Background(), alice.Hex())
	require.NoError(t, err)
	require.Len(t, notes.created, 1)
	assert.Equal(t, "You have 2 task(s) due today or overdue. Please check your tasks.", notes.created[0].Message)
}

func TestOfflineRecipientStillGetsStoredNotification(t *testing.T) {
	bob := &entity.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	users := &fakeUsers{byEmail: map[string]*entity.User{"bob@example.com": bob}}
	notes := &fakeNotifications{}
	relay := &fakeRelay{online: false}
	n := newTestNotifier(users, &fakeTasks{}, notes, &fakeSettings{}, relay)

	task := &entity.Task{Title: "Offline", AssignedTo: "bob@example.com"}
	n.TaskAssigned(context.Background(), "alice@example.com", task)

	require.Len(t, notes.created, 1)
	assert.Equal(t, 1, relay.delivered[bob.ID.Hex()])
}

func TestUserRegisteredSendsWelcome(t *testing.T) {
	notes := &fakeNotifications{}
	n := newTestNotifier(&fakeUsers{}, &fakeTasks{}, notes, &fakeSettings{}, &fakeRelay{})

	uid := primitive.NewObjectID()
	n.UserRegistered(context.Background(), uid.Hex())

	require.Len(t, notes.created, 1)
	got := notes.created[0]
	assert.Equal(t, uid, got.Recipient)
	assert.Equal(t, entity.NotificationSystem, got.Type)
	assert.Equal(t, entity.PriorityLow, got.Priority)
}

func TestReminderCutoffIsNextLocalMidnight(t *testing.T) {
	now := time.Date(2024, 3, 15, 17, 42, 0, 0, time.Local)
	cutoff := reminderCutoff(now)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local), cutoff)
}
