package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/contributor-dev/contributor-api/internal/constants"
	"github.com/contributor-dev/contributor-api/internal/dto"
	apierrors "github.com/contributor-dev/contributor-api/internal/errors"
	"github.com/contributor-dev/contributor-api/internal/services"
	"github.com/contributor-dev/contributor-api/internal/token"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	githubService *services.GitHubService
	codec         *token.Codec
	tokenTTL      time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, githubService *services.GitHubService, codec *token.Codec, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		githubService: githubService,
		codec:         codec,
		tokenTTL:      tokenTTL,
	}
}

// Login is an OAuth2-compatible form login: the username field carries the
// email. Bad credentials and inactive accounts both answer 400.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		apierrors.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.authService.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.BadRequest(c, "Incorrect email or password")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !user.IsActive {
		apierrors.BadRequest(c, "Inactive user")
		return
	}

	accessToken, err := h.codec.Issue(user.ID, h.tokenTTL)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenDTO(accessToken))
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GithubLogin redirects to the GitHub OAuth authorization page.
func (h *AuthHandler) GithubLogin(c *gin.Context) {
	if !h.githubService.Configured() {
		apierrors.ServiceUnavailable(c, "GitHub OAuth is not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.githubService.LoginURL(state))
}

// GithubCallback exchanges the OAuth code and returns a bearer token for the
// linked local account.
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "code is required")
		return
	}

	user, err := h.githubService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGithubNotConfigured):
			apierrors.ServiceUnavailable(c, "GitHub OAuth is not configured")
		case errors.Is(err, services.ErrGithubUpstream):
			apierrors.BadGateway(c, "GitHub request failed")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	accessToken, err := h.codec.Issue(user.ID, h.tokenTTL)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         dto.ToUserDTO(*user),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		// The source contract answers 400 for duplicate emails, not 409.
		apierrors.BadRequest(c, "The user with this email already exists in the system")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func randomState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
