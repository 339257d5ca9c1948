package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-manager-pro/internal/application"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
	"github.com/oksasatya/task-manager-pro/pkg/response"
	"github.com/oksasatya/task-manager-pro/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string     `json:"category" binding:"omitempty,max=100"`
	Tags        []string   `json:"tags"`
	AssignedTo  string     `json:"assigned_to" binding:"omitempty,email"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Tags        *[]string  `json:"tags"`
	AssignedTo  *string    `json:"assigned_to" binding:"omitempty,email"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), c.GetString("userEmail"), application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.Logger.WithError(err).Error("task create failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create task", nil)
		return
	}
	response.Success(c, http.StatusCreated, t, "task created", nil)
}

// List returns the caller's active tasks, optionally filtered by
// ?priority= and ?due_before= (RFC 3339).
func (h *TaskHandler) List(c *gin.Context) {
	var f repository.TaskFilter
	f.Priority = c.Query("priority")
	raw := c.Query("due_before")
	if raw == "" {
		raw = c.Query("dueDate")
	}
	if raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid due_before, want RFC3339", nil)
			return
		}
		f.DueBefore = &t
	}
	tasks, err := h.Svc.List(c.Request.Context(), c.GetString("userID"), f)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) ListAssigned(c *gin.Context) {
	tasks, err := h.Svc.ListAssigned(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list assigned tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, tasks, "assigned tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) ListDeleted(c *gin.Context) {
	tasks, err := h.Svc.ListDeleted(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list deleted tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, tasks, "deleted tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("userEmail"), repository.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		notFoundOrError(c, err, "failed to update task")
		return
	}
	response.Success(c, http.StatusOK, t, "task updated", nil)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("userEmail"), req.Status)
	if err != nil {
		notFoundOrError(c, err, "failed to update status")
		return
	}
	response.Success(c, http.StatusOK, t, "status updated", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	err := h.Svc.SoftDelete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		notFoundOrError(c, err, "failed to delete task")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "task moved to trash", nil)
}

func (h *TaskHandler) Restore(c *gin.Context) {
	t, err := h.Svc.Restore(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		notFoundOrError(c, err, "failed to restore task")
		return
	}
	response.Success(c, http.StatusOK, t, "task restored", nil)
}

func (h *TaskHandler) RestoreAll(c *gin.Context) {
	n, err := h.Svc.RestoreAll(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to restore tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"restored": n}, "tasks restored", nil)
}

func (h *TaskHandler) DeletePermanent(c *gin.Context) {
	err := h.Svc.DeletePermanent(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		notFoundOrError(c, err, "failed to delete task")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "task permanently deleted", nil)
}

func (h *TaskHandler) DeleteAllPermanent(c *gin.Context) {
	n, err := h.Svc.DeleteAllDeleted(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to empty trash", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, "trash emptied", nil)
}

// notFoundOrError maps the repository's not-found to 404 and anything
// else to a 500 with a generic message. Tasks owned by someone else
// look identical to tasks that do not exist.
func notFoundOrError(c *gin.Context, err error, msg string) {
	if err == repository.ErrNotFound {
		response.Error[any](c, http.StatusNotFound, "task not found", nil)
		return
	}
	response.Error[any](c, http.StatusInternalServerError, msg, nil)
}
