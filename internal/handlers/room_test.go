package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contributor-dev/contributor-api/internal/constants"
	"github.com/contributor-dev/contributor-api/internal/database"
	"github.com/contributor-dev/contributor-api/internal/dto"
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RoomHandlerTestSuite defines the test suite for RoomHandler
type RoomHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *RoomHandler
}

// SetupTest runs before each test
func (suite *RoomHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Room{}, &models.Task{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	roomRepo := repository.NewRoomRepository(suite.db)
	suite.handler = NewRoomHandler(services.NewRoomService(roomRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *RoomHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RoomHandlerTestSuite) createTestUser(email, username string) *models.User {
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hashedpassword",
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *RoomHandlerTestSuite) createTestRoom(name string, ownerID uint64) *models.Room {
	room := &models.Room{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.db.Create(room)
	return room
}

// createAuthContext builds a gin context carrying the authenticated user ID
func (suite *RoomHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *RoomHandlerTestSuite) TestCreateRoom() {
	user := suite.createTestUser("owner@example.com", "owner")

	body, _ := json.Marshal(map[string]string{
		"name":        "Project X",
		"description": "A test project",
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/v1/rooms", body, user.ID)

	suite.handler.CreateRoom(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.RoomDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Project X", response.Name)
	suite.Equal(user.ID, response.OwnerID)
}

func (suite *RoomHandlerTestSuite) TestGetRoom() {
	user := suite.createTestUser("owner@example.com", "owner")
	room := suite.createTestRoom("Project X", user.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/v1/rooms/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.GetRoom(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.RoomDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(room.ID, response.ID)
}

func (suite *RoomHandlerTestSuite) TestGetRoom_NotFound() {
	user := suite.createTestUser("owner@example.com", "owner")

	c, w := suite.createAuthContext(http.MethodGet, "/api/v1/rooms/999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.GetRoom(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RoomHandlerTestSuite) TestUpdateRoom_Owner() {
	user := suite.createTestUser("owner@example.com", "owner")
	room := suite.createTestRoom("Project X", user.ID)

	body, _ := json.Marshal(map[string]string{"name": "Project Y"})
	c, w := suite.createAuthContext(http.MethodPut, "/api/v1/rooms/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateRoom(c)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.Room
	suite.Require().NoError(suite.db.First(&updated, room.ID).Error)
	suite.Equal("Project Y", updated.Name)
}

func (suite *RoomHandlerTestSuite) TestUpdateRoom_NonOwnerForbidden() {
	owner := suite.createTestUser("owner@example.com", "owner")
	other := suite.createTestUser("other@example.com", "other")
	room := suite.createTestRoom("Project X", owner.ID)

	body, _ := json.Marshal(map[string]string{"name": "Hijacked"})
	c, w := suite.createAuthContext(http.MethodPut, "/api/v1/rooms/1", body, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateRoom(c)

	suite.Equal(http.StatusForbidden, w.Code)

	var unchanged models.Room
	suite.Require().NoError(suite.db.First(&unchanged, room.ID).Error)
	suite.Equal("Project X", unchanged.Name)
}

func (suite *RoomHandlerTestSuite) TestDeleteRoom_Owner() {
	user := suite.createTestUser("owner@example.com", "owner")
	room := suite.createTestRoom("Project X", user.ID)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/v1/rooms/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteRoom(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success": true}`, w.Body.String())

	err := suite.db.First(&models.Room{}, room.ID).Error
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RoomHandlerTestSuite) TestDeleteRoom_NonOwnerForbidden() {
	owner := suite.createTestUser("owner@example.com", "owner")
	other := suite.createTestUser("other@example.com", "other")
	suite.createTestRoom("Project X", owner.ID)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/v1/rooms/1", nil, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteRoom(c)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RoomHandlerTestSuite) TestListRooms_Pagination() {
	user := suite.createTestUser("owner@example.com", "owner")
	suite.createTestRoom("Room A", user.ID)
	suite.createTestRoom("Room B", user.ID)
	suite.createTestRoom("Room C", user.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/v1/rooms?skip=1&limit=1", nil, user.ID)

	suite.handler.ListRooms(c)

	suite.Equal(http.StatusOK, w.Code)

	var response []dto.RoomDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response, 1)
}

func TestRoomHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}
