package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/contributor-dev/contributor-api/internal/dto"
	apierrors "github.com/contributor-dev/contributor-api/internal/errors"
	"github.com/contributor-dev/contributor-api/internal/middleware"
	"github.com/contributor-dev/contributor-api/internal/services"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// RoomHandler coordinates room HTTP handlers.
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// ListRooms returns rooms with skip/limit pagination.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rooms, err := h.roomService.ListRooms(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch rooms")
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTOs(rooms))
}

// CreateRoom creates a new room owned by the caller.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRoomRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.CreateRoom(services.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoomDTO(*room))
}

// GetRoom returns a room by ID.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTO(*room))
}

// UpdateRoom updates a room; only the owner may do this.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRoomRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.UpdateRoom(roomID, userID, services.UpdateRoomInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTO(*room))
}

// DeleteRoom deletes a room; only the owner may do this.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(roomID, userID); err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		apierrors.NotFound(c, "Room not found")
	case errors.Is(err, services.ErrNotRoomOwner):
		apierrors.Forbidden(c, "Not enough permissions")
	case errors.Is(err, services.ErrInvalidRoomName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseIDParam parses the :id path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
