package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRoomName = errors.New("room name cannot be empty")
	ErrNotRoomOwner    = errors.New("only the room owner can perform this action")
)

// RoomService provides business logic for room operations.
type RoomService struct {
	roomRepo repository.RoomRepository
}

// NewRoomService creates a new RoomService.
func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
	}
}

// CreateRoomInput represents parameters to create a new room.
type CreateRoomInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateRoom creates a new room owned by the caller.
func (s *RoomService) CreateRoom(input CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidRoomName
	}

	room := &models.Room{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.roomRepo.Create(room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

// ListRooms returns rooms visible to any authenticated user.
func (s *RoomService) ListRooms(params utils.PaginationParams) ([]models.Room, error) {
	rooms, err := s.roomRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns a room by ID.
func (s *RoomService) GetRoom(roomID uint64) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

// UpdateRoomInput represents a partial update of a room.
type UpdateRoomInput struct {
	Name        *string
	Description *string
}

// UpdateRoom updates a room if the actor is the owner.
func (s *RoomService) UpdateRoom(roomID, actorID uint64, input UpdateRoomInput) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	if room.OwnerID != actorID {
		return nil, ErrNotRoomOwner
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidRoomName
		}
		room.Name = *input.Name
	}
	if input.Description != nil {
		room.Description = *input.Description
	}

	if err := s.roomRepo.Update(room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// DeleteRoom deletes a room if the actor is the owner.
func (s *RoomService) DeleteRoom(roomID, actorID uint64) error {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to find room: %w", err)
	}

	if room.OwnerID != actorID {
		return ErrNotRoomOwner
	}

	if err := s.roomRepo.Delete(roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}
