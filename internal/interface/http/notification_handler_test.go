package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	markAllCalls  int
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipient string) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.notifications {
		if n.Recipient.Hex() == recipient {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipient string) (*entity.Notification, error) {
	for _, n := range f.notifications {
		if n.ID.Hex() == id && n.Recipient.Hex() == recipient {
			n.Read = true
			return n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipient string) error {
	f.markAllCalls++
	for _, n := range f.notifications {
		if n.Recipient.Hex() == recipient {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, recipient string) error {
	for i, n := range f.notifications {
		if n.ID.Hex() == id && n.Recipient.Hex() == recipient {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotificationRepo) DeleteAllForRecipient(_ context.Context, recipient string) error {
	var keep []*entity.Notification
	for _, n := range f.notifications {
		if n.Recipient.Hex() != recipient {
			keep = append(keep, n)
		}
	}
	f.notifications = keep
	return nil
}

func (f *fakeNotificationRepo) InsertMany(_ context.Context, ns []*entity.Notification) error {
	f.notifications = append(f.notifications, ns...)
	return nil
}

func setupNotificationRouter(repo repository.NotificationRepository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewNotificationHandler(repo, nil, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.PUT("/notifications/mark-read", h.MarkAllRead)
	r.PUT("/notifications/:id/read", h.MarkRead)
	r.DELETE("/notifications/:id", h.Delete)
	return r
}

func seedNotification(repo *fakeNotificationRepo, recipient, title string, read bool) *entity.Notification {
	n := &entity.Notification{
		ID:        newObjectID(),
		Recipient: mustObjectID(recipient),
		Type:      entity.NotificationTask,
		Title:     title,
		Read:      read,
	}
	repo.notifications = append(repo.notifications, n)
	return n
}

func TestListReportsUnreadCount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uid := newObjectID().Hex()
	seedNotification(repo, uid, "a", false)
	seedNotification(repo, uid, "b", true)
	seedNotification(repo, newObjectID().Hex(), "other user", false)

	r := setupNotificationRouter(repo, uid)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Meta struct {
			Count  int `json:"count"`
			Unread int `json:"unread"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Meta.Count)
	assert.Equal(t, 1, body.Meta.Unread)
}

func TestMarkReadForeignNotificationIs404(t *testing.T) {
	repo := &fakeNotificationRepo{}
	other := newObjectID().Hex()
	n := seedNotification(repo, other, "not yours", false)

	r := setupNotificationRouter(repo, newObjectID().Hex())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/notifications/"+n.ID.Hex()+"/read", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, n.Read)
}

func TestMarkReadOwnNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uid := newObjectID().Hex()
	n := seedNotification(repo, uid, "mine", false)

	r := setupNotificationRouter(repo, uid)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/notifications/"+n.ID.Hex()+"/read", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, n.Read)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uid := newObjectID().Hex()
	r := setupNotificationRouter(repo, uid)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notifications/mark-read", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, repo.markAllCalls)
}

func TestDeleteForeignNotificationIs404(t *testing.T) {
	repo := &fakeNotificationRepo{}
	n := seedNotification(repo, newObjectID().Hex(), "not yours", false)

	r := setupNotificationRouter(repo, newObjectID().Hex())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/notifications/"+n.ID.Hex(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, repo.notifications, 1)
}
