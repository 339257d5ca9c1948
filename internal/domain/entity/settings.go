package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPrefs uses pointers so an absent flag can be told apart
// from an explicit false: a missing settings record (or field) means
// the preference is enabled.
type NotificationPrefs struct {
	DailyReminders *bool `bson:"daily_reminders,omitempty" json:"dailyReminders,omitempty"`
	General        *bool `bson:"general,omitempty" json:"general,omitempty"`
}

type PrivacyPrefs struct {
	ProfileVisibility   string `bson:"profile_visibility,omitempty" json:"profileVisibility,omitempty"` // public, private, friends
	ShowEmail           bool   `bson:"show_email" json:"showEmail"`
	ShowActivity        bool   `bson:"show_activity" json:"showActivity"`
	AllowTaskAssignment bool   `bson:"allow_task_assignment" json:"allowTaskAssignment"`
}

// UserSettings holds one document per user.
type UserSettings struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Notifications NotificationPrefs  `bson:"notifications" json:"notifications"`
	Privacy       PrivacyPrefs       `bson:"privacy" json:"privacy"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// DailyRemindersEnabled reports the opt-out check for the reminder
// sweep: only an explicit false disables reminders.
func (s *UserSettings) DailyRemindersEnabled() bool {
	if s == nil || s.Notifications.DailyReminders == nil {
		return true
	}
	return *s.Notifications.DailyReminders
}

// DefaultSettings returns the settings document created lazily on first
// read or write for a user.
func DefaultSettings(user primitive.ObjectID) *UserSettings {
	t := true
	now := time.Now()
	return &UserSettings{
		User: user,
		Notifications: NotificationPrefs{
			DailyReminders: &t,
			General:        &t,
		},
		Privacy: PrivacyPrefs{
			ProfileVisibility:   "public",
			ShowEmail:           false,
			ShowActivity:        true,
			AllowTaskAssignment: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
