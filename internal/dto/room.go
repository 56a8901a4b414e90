package dto

import (
	"time"

	"github.com/contributor-dev/contributor-api/internal/models"
)

// RoomDTO represents a room in API responses
type RoomDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRoomDTO converts a Room model to RoomDTO
func ToRoomDTO(room models.Room) RoomDTO {
	return RoomDTO{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		OwnerID:     room.OwnerID,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// ToRoomDTOs converts a slice of Room models
func ToRoomDTOs(rooms []models.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = ToRoomDTO(room)
	}
	return dtos
}
