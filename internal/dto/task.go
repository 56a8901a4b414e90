package dto

import (
	"time"

	"github.com/contributor-dev/contributor-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	RoomID       uint64            `json:"room_id"`
	AssigneeID   *uint64           `json:"assignee_id"`
	Status       models.TaskStatus `json:"status"`
	GithubBranch string            `json:"github_branch,omitempty"`
	GithubPRURL  string            `json:"github_pr_url,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	StartedAt    *time.Time        `json:"started_at"`
	CompletedAt  *time.Time        `json:"completed_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		RoomID:       task.RoomID,
		AssigneeID:   task.AssigneeID,
		Status:       task.Status,
		GithubBranch: task.GithubBranch,
		GithubPRURL:  task.GithubPRURL,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		StartedAt:    task.StartedAt,
		CompletedAt:  task.CompletedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
