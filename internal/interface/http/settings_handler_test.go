package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

func newObjectID() primitive.ObjectID { return primitive.NewObjectID() }

func mustObjectID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}

type fakeSettingsRepo struct {
	byUser map[string]*entity.UserSettings
}

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) GetByUser(_ context.Context, user string) (*entity.UserSettings, error) {
	s, ok := f.byUser[user]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *entity.UserSettings) error {
	if f.byUser == nil {
		f.byUser = map[string]*entity.UserSettings{}
	}
	f.byUser[s.User.Hex()] = s
	return nil
}

func (f *fakeSettingsRepo) DeleteForUser(_ context.Context, user string) error {
	delete(f.byUser, user)
	return nil
}

func setupSettingsRouter(repo repository.SettingsRepository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewSettingsHandler(repo, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.GET("/user-settings", h.Get)
	r.PUT("/user-settings", h.Update)
	return r
}

func TestGetSettingsSynthesizesDefaults(t *testing.T) {
	uid := newObjectID().Hex()
	r := setupSettingsRouter(&fakeSettingsRepo{}, uid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user-settings", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data entity.UserSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.DailyRemindersEnabled())
}

func TestUpdateSettingsDisablesDailyReminders(t *testing.T) {
	uid := newObjectID().Hex()
	repo := &fakeSettingsRepo{}
	r := setupSettingsRouter(repo, uid)

	w := httptest.NewRecorder()
	payload := `{"notifications":{"dailyReminders":false}}`
	req := httptest.NewRequest(http.MethodPut, "/user-settings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	stored, ok := repo.byUser[uid]
	require.True(t, ok)
	assert.False(t, stored.DailyRemindersEnabled())
	// Untouched preferences keep their defaults.
	require.NotNil(t, stored.Notifications.General)
	assert.True(t, *stored.Notifications.General)
}

func TestUpdateSettingsPartialMergeKeepsExisting(t *testing.T) {
	uid := newObjectID()
	off := false
	repo := &fakeSettingsRepo{byUser: map[string]*entity.UserSettings{
		uid.Hex(): {User: uid, Notifications: entity.NotificationPrefs{DailyReminders: &off}},
	}}
	r := setupSettingsRouter(repo, uid.Hex())

	w := httptest.NewRecorder()
	payload := `{"notifications":{"general":true}}`
	req := httptest.NewRequest(http.MethodPut, "/user-settings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	stored := repo.byUser[uid.Hex()]
	assert.False(t, stored.DailyRemindersEnabled())
	require.NotNil(t, stored.Notifications.General)
	assert.True(t, *stored.Notifications.General)
}
