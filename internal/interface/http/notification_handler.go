package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-manager-pro/internal/application"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
	"github.com/oksasatya/task-manager-pro/pkg/response"
)

type NotificationHandler struct {
	Repo     repository.NotificationRepository
	Notifier *application.Notifier
	Logger   *logrus.Logger
}

func NewNotificationHandler(repo repository.NotificationRepository, notifier *application.Notifier, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Repo: repo, Notifier: notifier, Logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ns, err := h.Repo.ListByRecipient(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list notifications", nil)
		return
	}
	unread := 0
	for _, n := range ns {
		if !n.Read {
			unread++
		}
	}
	response.Success(c, http.StatusOK, ns, "notifications", map[string]any{
		"count":  len(ns),
		"unread": unread,
	})
}

// MarkRead flags one notification as read. A notification belonging to
// another user is indistinguishable from a missing one.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.Repo.MarkRead(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if err == repository.ErrNotFound {
			response.Error[any](c, http.StatusNotFound, "notification not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to mark notification", nil)
		return
	}
	response.Success(c, http.StatusOK, n, "notification marked read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.Repo.MarkAllRead(c.Request.Context(), c.GetString("userID")); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to mark notifications", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"marked": true}, "all notifications marked read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if err == repository.ErrNotFound {
			response.Error[any](c, http.StatusNotFound, "notification not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to delete notification", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "notification deleted", nil)
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	if err := h.Repo.DeleteAllForRecipient(c.Request.Context(), c.GetString("userID")); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to clear notifications", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"cleared": true}, "notifications cleared", nil)
}

// SendReminders triggers the daily reminder sweep on demand. A sweep
// already in flight makes this a no-op reporting zero users.
func (h *NotificationHandler) SendReminders(c *gin.Context) {
	n, err := h.Notifier.SendDailyReminders(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("manual reminder sweep failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to send reminders", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "reminders sent", nil)
}
