package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/contributor-dev/contributor-api/internal/config"
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

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Room{}, &models.Task{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	roomRepo := repository.NewRoomRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)

	// Without a configured repository the GitHub service only generates
	// branch names, so no network calls happen in tests.
	githubService := services.NewGitHubService(&config.Config{}, userRepo)
	taskService := services.NewTaskService(taskRepo, roomRepo, githubService)
	roomService := services.NewRoomService(roomRepo)

	suite.handler = NewTaskHandler(taskService, roomService, nil)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email, username string) *models.User {
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hashedpassword",
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestRoom(name string, ownerID uint64) *models.Room {
	room := &models.Room{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.db.Create(room)
	return room
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, roomID uint64) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		RoomID:      roomID,
		Status:      models.TaskStatusPending,
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds a gin context carrying the authenticated user ID
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *TaskHandlerTestSuite) setTaskParam(c *gin.Context, taskID uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(taskID, 10)}}
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	user := suite.createTestUser("owner@example.com", "owner")
	room := suite.createTestRoom("Project X", user.ID)

	body, _ := json.Marshal(map[string]any{
		"title":   "fix bug",
		"room_id": room.ID,
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/v1/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("fix bug", response.Title)
	suite.Equal(models.TaskStatusPending, response.Status)
	suite.Nil(response.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_RoomMissing() {
	user := suite.createTestUser("owner@example.com", "owner")

	body, _ := json.Marshal(map[string]any{
		"title":   "fix bug",
		"room_id": 999,
	})
	c, w := suite.createAuthContext(http.MethodPost, "/api/v1/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_UnassignedForbidden() {
	user := suite.createTestUser("owner@example.com", "owner")
	room := suite.createTestRoom("Project X", user.ID)
	task := suite.createTestTask("fix bug", room.ID)

	// No one has joined yet, so even the room owner cannot update.
	body, _ := json.Marshal(map[string]string{"title": "renamed"})
	c, w := suite.createAuthContext(http.MethodPut, "/api/v1/tasks/1", body, user.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestJoinThenUpdate() {
	alice := suite.createTestUser("a@x.com", "alice")
	bob := suite.createTestUser("b@x.com", "bob")
	room := suite.createTestRoom("R1", alice.ID)
	task := suite.createTestTask("fix bug", room.ID)

	// Bob joins the task.
	c, w := suite.createAuthContext(http.MethodPost, "/api/v1/tasks/1/join", nil, bob.ID)
	suite.setTaskParam(c, task.ID)
	suite.handler.JoinTask(c)

	suite.Equal(http.StatusOK, w.Code)

	var joined dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &joined))
	suite.Require().NotNil(joined.AssigneeID)
	suite.Equal(bob.ID, *joined.AssigneeID)

	// Alice (room owner, not assignee) cannot update.
	body, _ := json.Marshal(map[string]string{"title": "renamed by alice"})
	c, w = suite.createAuthContext(http.MethodPut, "/api/v1/tasks/1", body, alice.ID)
	suite.setTaskParam(c, task.ID)
	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusForbidden, w.Code)

	// Bob, the assignee, can.
	body, _ = json.Marshal(map[string]string{"title": "renamed by bob"})
	c, w = suite.createAuthContext(http.MethodPut, "/api/v1/tasks/1", body, bob.ID)
	suite.setTaskParam(c, task.ID)
	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	suite.Equal("renamed by bob", updated.Title)
}

func (suite *TaskHandlerTestSuite) TestJoinTask_LastWriterWins() {
	alice := suite.createTestUser("a@x.com", "alice")
	bob := suite.createTestUser("b@x.com", "bob")
	room := suite.createTestRoom("R1", alice.ID)
	task := suite.createTestTask("fix bug", room.ID)

	c, _ := suite.createAuthContext(http.MethodPost, "/api/v1/tasks/1/join", nil, alice.ID)
	suite.setTaskParam(c, task.ID)
	suite.handler.JoinTask(c)

	c, _ = suite.createAuthContext(http.MethodPost, "/api/v1/tasks/1/join", nil, bob.ID)
	suite.setTaskParam(c, task.ID)
	suite.handler.JoinTask(c)

	var current models.Task
	suite.Require().NoError(suite.db.First(&current, task.ID).Error)
	suite.Require().NotNil(current.AssigneeID)
	suite.Equal(bob.ID, *current.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestStartTask_NoOwnershipGate() {
	alice := suite.createTestUser("a@x.com", "alice")
	stranger := suite.createTestUser("s@x.com", "stranger")
	room := suite.createTestRoom("R1", alice.ID)
	task := suite.createTestTask("fix bug", room.ID)

	// Any authenticated user may start any task.
	c, w := suite.createAuthContext(http.MethodPost, "/api/v1/tasks/1/start", nil, stranger.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.StartTask(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusInProgress, response.Status)
	suite.NotEmpty(response.GithubBranch)
	suite.NotNil(response.StartedAt)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	user := suite.createTestUser("owner@example.com", "owner")

	c, w := suite.createAuthContext(http.MethodGet, "/api/v1/tasks/999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.GetTask(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
