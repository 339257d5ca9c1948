package application

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

// Relay pushes a notification to a connected user. Deliver reports
// whether the payload was handed to a live connection; false means the
// user is offline or their buffer is full, and the notification stays
// unread in the store either way.
type Relay interface {
	Deliver(userID string, payload interface{}) bool
}

// Notifier turns task lifecycle events into stored notifications and
// relays them to online recipients. Store writes are best-effort from
// the caller's point of view: a failed notification never fails the
// task operation that triggered it.
type Notifier struct {
	notifications repository.NotificationRepository
	tasks         repository.TaskRepository
	users         repository.UserRepository
	settings      repository.SettingsRepository
	relay         Relay
	logger        *logrus.Logger

	sweeping atomic.Bool
}

func NewNotifier(
	notifications repository.NotificationRepository,
	tasks repository.TaskRepository,
	users repository.UserRepository,
	settings repository.SettingsRepository,
	relay Relay,
	logger *logrus.Logger,
) *Notifier {
	return &Notifier{
		notifications: notifications,
		tasks:         tasks,
		users:         users,
		settings:      settings,
		relay:         relay,
		logger:        logger,
	}
}

// UserRegistered greets a newly registered user with a system
// notification.
func (n *Notifier) UserRegistered(ctx context.Context, userID string) {
	n.notify(ctx, userID, &entity.Notification{
		Type:     entity.NotificationSystem,
		Priority: entity.PriorityLow,
		Title:    "Welcome to Task Manager Pro",
		Message:  "Your account is ready. Create your first task to get started.",
	})
}

// TaskAssigned notifies the assignee of task when it was created with
// an assignment. Assigning a task to yourself is not announced.
func (n *Notifier) TaskAssigned(ctx context.Context, actorEmail string, task *entity.Task) {
	assignee := n.resolveAssignee(ctx, actorEmail, task)
	if assignee == nil {
		return
	}
	n.notify(ctx, assignee.ID.Hex(), &entity.Notification{
		Type:     entity.NotificationTask,
		Priority: taskPriority(task),
		Title:    "New Task Assigned",
		Message:  fmt.Sprintf("You have been assigned a new task: %q", task.Title),
	})
}

// TaskUpdated notifies the assignee that a task assigned to them
// changed.
func (n *Notifier) TaskUpdated(ctx context.Context, actorEmail string, task *entity.Task) {
	assignee := n.resolveAssignee(ctx, actorEmail, task)
	if assignee == nil {
		return
	}
	n.notify(ctx, assignee.ID.Hex(), &entity.Notification{
		Type:     entity.NotificationUpdate,
		Priority: taskPriority(task),
		Title:    "Task Updated",
		Message:  fmt.Sprintf("Task %q assigned to you has been updated.", task.Title),
	})
}

// StatusChanged notifies the task owner that the assignee moved the
// task to a new status. Nothing is sent when the owner changed the
// status themselves.
func (n *Notifier) StatusChanged(ctx context.Context, actorID, actorEmail string, task *entity.Task) {
	ownerID := task.Owner.Hex()
	if ownerID == actorID {
		return
	}
	n.notify(ctx, ownerID, &entity.Notification{
		Type:     entity.NotificationUpdate,
		Priority: taskPriority(task),
		Title:    "Task Status Updated",
		Message:  fmt.Sprintf("Task %q assigned to %s was updated to status: %s", task.Title, actorEmail, task.Status),
	})
}

// SendDailyReminders finds every task due today or overdue, groups
// them by owner, and sends one reminder per user summarizing the
// count. Users who disabled daily reminders are skipped. At most one
// sweep runs at a time; a second call while one is in flight is a
// no-op. Returns the number of users a reminder was stored for.
func (n *Notifier) SendDailyReminders(ctx context.Context) (int, error) {
	if !n.sweeping.CompareAndSwap(false, true) {
		n.logger.Warn("reminder sweep already in progress, skipping")
		return 0, nil
	}
	defer n.sweeping.Store(false)

	tasks, err := n.tasks.ListDueBefore(ctx, reminderCutoff(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("list due tasks: %w", err)
	}

	byOwner := map[string]int{}
	for _, t := range tasks {
		byOwner[t.Owner.Hex()]++
	}

	reminded := 0
	for userID, count := range byOwner {
		if !n.remindersEnabled(ctx, userID) {
			continue
		}
		if n.notify(ctx, userID, reminderNotification(count)) {
			reminded++
		}
	}

	n.logger.WithFields(logrus.Fields{
		"due_tasks": len(tasks),
		"reminded":  reminded,
	}).Info("daily reminder sweep complete")
	return reminded, nil
}

// SendUserDailyReminder runs the reminder check for a single user,
// typically right after login. A user with no due tasks gets nothing.
func (n *Notifier) SendUserDailyReminder(ctx context.Context, userID string) error {
	if !n.remindersEnabled(ctx, userID) {
		return nil
	}
	tasks, err := n.tasks.ListDueBeforeForOwner(ctx, userID, reminderCutoff(time.Now()))
	if err != nil {
		return fmt.Errorf("list due tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}
	n.notify(ctx, userID, reminderNotification(len(tasks)))
	return nil
}

// resolveAssignee maps a task's assigned email to a user, or nil when
// the task is unassigned, the email matches the actor (self
// assignment), or no account exists for it.
func (n *Notifier) resolveAssignee(ctx context.Context, actorEmail string, task *entity.Task) *entity.User {
	email := entity.NormalizeEmail(task.AssignedTo)
	if email == "" || email == entity.NormalizeEmail(actorEmail) {
		return nil
	}
	u, err := n.users.GetByEmail(ctx, email)
	if err != nil {
		if err != repository.ErrNotFound {
			n.logger.WithError(err).WithField("email", email).Warn("assignee lookup failed")
		}
		return nil
	}
	return u
}

func (n *Notifier) remindersEnabled(ctx context.Context, userID string) bool {
	s, err := n.settings.GetByUser(ctx, userID)
	if err != nil {
		// No settings document means the user never opted out.
		if err != repository.ErrNotFound {
			n.logger.WithError(err).WithField("user_id", userID).Warn("settings lookup failed")
		}
		return true
	}
	return s.DailyRemindersEnabled()
}

// notify persists the notification and pushes it to the recipient if
// they are online. Persistence errors are logged and swallowed; the
// return value reports whether the notification was stored.
func (n *Notifier) notify(ctx context.Context, userID string, note *entity.Notification) bool {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		n.logger.WithError(err).WithField("user_id", userID).Warn("invalid notification recipient")
		return false
	}
	note.Recipient = oid

	if err := n.notifications.Create(ctx, note); err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"type":    note.Type,
		}).Error("failed to store notification")
		return false
	}

	if n.relay != nil && !n.relay.Deliver(userID, note) {
		n.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"type":    note.Type,
		}).Debug("recipient offline, notification stored only")
	}
	return true
}

// taskPriority carries the task's priority into its notification,
// falling back to medium when the task has none.
func taskPriority(t *entity.Task) string {
	if t.Priority == "" {
		return entity.PriorityMedium
	}
	return t.Priority
}

func reminderNotification(count int) *entity.Notification {
	return &entity.Notification{
		Type:     entity.NotificationReminder,
		Priority: entity.PriorityHigh,
		Title:    "Task Due Reminder",
		Message:  fmt.Sprintf("You have %d task(s) due today or overdue. Please check your tasks.", count),
	}
}

// reminderCutoff is the exclusive upper bound on due dates considered
// "due today or overdue": local midnight at the start of tomorrow.
func reminderCutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
