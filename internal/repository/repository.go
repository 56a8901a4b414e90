package repository

import (
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByGithubID finds a user by their linked GitHub account ID
	FindByGithubID(githubID string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	// Create creates a new room
	Create(room *models.Room) error

	// FindByID finds a room by ID
	FindByID(id uint64) (*models.Room, error)

	// List retrieves rooms with pagination
	List(params utils.PaginationParams) ([]models.Room, error)

	// Update updates a room
	Update(room *models.Room) error

	// Delete deletes a room and its tasks
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with pagination
	List(params utils.PaginationParams) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error
}
