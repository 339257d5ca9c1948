package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyRemindersEnabled(t *testing.T) {
	on, off := true, false

	var missing *UserSettings
	assert.True(t, missing.DailyRemindersEnabled(), "no settings document means enabled")

	absent := &UserSettings{}
	assert.True(t, absent.DailyRemindersEnabled(), "absent flag means enabled")

	enabled := &UserSettings{Notifications: NotificationPrefs{DailyReminders: &on}}
	assert.True(t, enabled.DailyRemindersEnabled())

	disabled := &UserSettings{Notifications: NotificationPrefs{DailyReminders: &off}}
	assert.False(t, disabled.DailyRemindersEnabled(), "only an explicit false disables")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@example.com", NormalizeEmail("  Bob@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
