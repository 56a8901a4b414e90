package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/contributor-dev/contributor-api/internal/dto"
	apierrors "github.com/contributor-dev/contributor-api/internal/errors"
	"github.com/contributor-dev/contributor-api/internal/middleware"
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/services"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	roomService *services.RoomService
	aiService   *services.AIService
}

// NewTaskHandler creates a new TaskHandler. aiService may be nil when task
// generation is not configured.
func NewTaskHandler(taskService *services.TaskService, roomService *services.RoomService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		roomService: roomService,
		aiService:   aiService,
	}
}

// ListTasks returns tasks with skip/limit pagination.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, err := h.taskService.ListTasks(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task inside a room.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status"`
		RoomID      uint64            `json:"room_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		RoomID:      req.RoomID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates a task; only the current assignee may do this.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// StartTask marks a task in progress and links a branch to it.
func (h *TaskHandler) StartTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.StartTask(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// JoinTask sets the caller as the task assignee.
func (h *TaskHandler) JoinTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.JoinTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GenerateTasks extracts task suggestions from free text.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text   string `json:"text" binding:"required"`
		RoomID uint64 `json:"room_id" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.roomService.GetRoom(req.RoomID); err != nil {
		respondRoomError(c, err)
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "Task generation is not configured. Set OPENAI_API_KEY.")
		return
	}

	generated, err := h.aiService.GenerateTasksFromText(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to generate tasks: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": generated})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrRoomNotFound):
		apierrors.NotFound(c, "Room not found")
	case errors.Is(err, services.ErrNotTaskAssignee):
		apierrors.Forbidden(c, "Not enough permissions")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGithubUpstream):
		apierrors.BadGateway(c, "GitHub request failed")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
