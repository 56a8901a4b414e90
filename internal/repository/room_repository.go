package repository

import (
	"github.com/contributor-dev/contributor-api/internal/database"
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"gorm.io/gorm"
)

// GormRoomRepository is a GORM implementation of RoomRepository
type GormRoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &GormRoomRepository{db: db}
}

// Create creates a new room
func (r *GormRoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// FindByID finds a room by ID
func (r *GormRoomRepository) FindByID(id uint64) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// List retrieves rooms with pagination, newest first
func (r *GormRoomRepository) List(params utils.PaginationParams) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Update updates a room
func (r *GormRoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// Delete deletes a room and all of its tasks in a transaction
func (r *GormRoomRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Room{}, id).Error
	})
}
