package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
	"github.com/oksasatya/task-manager-pro/pkg/response"
	"github.com/oksasatya/task-manager-pro/pkg/validation"
)

type SettingsHandler struct {
	Repo   repository.SettingsRepository
	Logger *logrus.Logger
}

func NewSettingsHandler(repo repository.SettingsRepository, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Repo: repo, Logger: logger}
}

type updateSettingsRequest struct {
	Notifications *entity.NotificationPrefs `json:"notifications"`
	Privacy       *entity.PrivacyPrefs      `json:"privacy" binding:"omitempty"`
}

// Get returns the user's settings, synthesizing the defaults when no
// document exists yet.
func (h *SettingsHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	s, err := h.Repo.GetByUser(c.Request.Context(), uid)
	if err != nil {
		if err != repository.ErrNotFound {
			response.Error[any](c, http.StatusInternalServerError, "failed to load settings", nil)
			return
		}
		oid, oerr := primitive.ObjectIDFromHex(uid)
		if oerr != nil {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		s = entity.DefaultSettings(oid)
	}
	response.Success(c, http.StatusOK, s, "settings", nil)
}

// Update merges the submitted sections over the stored document and
// upserts it.
func (h *SettingsHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}

	s, err := h.Repo.GetByUser(c.Request.Context(), uid)
	if err != nil {
		if err != repository.ErrNotFound {
			response.Error[any](c, http.StatusInternalServerError, "failed to load settings", nil)
			return
		}
		s = entity.DefaultSettings(oid)
	}
	if req.Notifications != nil {
		if req.Notifications.DailyReminders != nil {
			s.Notifications.DailyReminders = req.Notifications.DailyReminders
		}
		if req.Notifications.General != nil {
			s.Notifications.General = req.Notifications.General
		}
	}
	if req.Privacy != nil {
		s.Privacy = *req.Privacy
	}

	if err := h.Repo.Upsert(c.Request.Context(), s); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("settings upsert failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to save settings", nil)
		return
	}
	response.Success(c, http.StatusOK, s, "settings updated", nil)
}
