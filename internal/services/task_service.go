package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrNotTaskAssignee = errors.New("only the task assignee can perform this action")
)

// BranchCreator provides branch names for started tasks. Implemented by
// GitHubService; the indirection keeps the external call out of task tests.
type BranchCreator interface {
	CreateBranchForTask(ctx context.Context, task *models.Task) (string, error)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	roomRepo repository.RoomRepository
	branches BranchCreator
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, roomRepo repository.RoomRepository, branches BranchCreator) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		roomRepo: roomRepo,
		branches: branches,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	RoomID      uint64
}

// ListTasks returns tasks with pagination
func (s *TaskService) ListTasks(params utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task inside a room
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.roomRepo.FindByID(input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		RoomID:      input.RoomID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// UpdateTask updates a task if the actor is the current assignee. A task with
// no assignee cannot be updated until someone joins it.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.AssigneeID == nil || *task.AssigneeID != actorID {
		return nil, ErrNotTaskAssignee
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// StartTask obtains a branch for the task and marks it in progress. Any
// authenticated user may start any task; there is no assignment gate here.
func (s *TaskService) StartTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	branch, err := s.branches.CreateBranchForTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGithubUpstream, err)
	}

	now := time.Now()
	task.Status = models.TaskStatusInProgress
	task.GithubBranch = branch
	task.StartedAt = &now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// JoinTask sets the caller as the task assignee. The last writer wins; there
// is no check that the task is unassigned.
func (s *TaskService) JoinTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.AssigneeID = &actorID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
