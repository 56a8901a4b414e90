package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/contributor-dev/contributor-api/internal/config"
	"github.com/contributor-dev/contributor-api/internal/models"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
	"gorm.io/gorm"
)

var (
	ErrGithubNotConfigured = errors.New("github oauth is not configured")
	ErrGithubUpstream      = errors.New("github request failed")
)

// GitHubService is the bridge to GitHub: OAuth login, account linking and
// branch creation for started tasks.
type GitHubService struct {
	oauth    *oauth2.Config
	userRepo repository.UserRepository

	repo     string
	apiToken string

	apiBaseURL string
	httpClient *http.Client
}

// NewGitHubService creates a new GitHubService from the process configuration.
func NewGitHubService(cfg *config.Config, userRepo repository.UserRepository) *GitHubService {
	return &GitHubService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			Endpoint:     githuboauth.Endpoint,
			Scopes:       []string{"user:email", "repo"},
			RedirectURL:  cfg.GithubRedirectURI,
		},
		userRepo:   userRepo,
		repo:       cfg.GithubRepo,
		apiToken:   cfg.GithubToken,
		apiBaseURL: "https://api.github.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether OAuth client credentials are present.
func (s *GitHubService) Configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// LoginURL returns the GitHub authorization URL for the given state.
func (s *GitHubService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// HandleCallback exchanges the authorization code, links or creates the local
// user and returns the user. The caller issues the bearer token.
func (s *GitHubService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	if !s.Configured() {
		return nil, ErrGithubNotConfigured
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", ErrGithubUpstream, err)
	}

	ghUser, err := s.fetchGithubUser(ctx, tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch user: %v", ErrGithubUpstream, err)
	}

	githubID := fmt.Sprintf("%d", ghUser.ID)

	user, err := s.userRepo.FindByGithubID(githubID)
	switch {
	case err == nil:
		// Already linked; refresh the stored access token.
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.linkOrCreateUser(ghUser)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.GithubID = &githubID
	accessToken := tok.AccessToken
	user.GithubAccessToken = &accessToken

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// linkOrCreateUser attaches the GitHub identity to an existing account with
// the same email, or registers a new account for the GitHub user.
func (s *GitHubService) linkOrCreateUser(ghUser *githubUser) (*models.User, error) {
	if ghUser.Email != "" {
		user, err := s.userRepo.FindByEmail(strings.ToLower(ghUser.Email))
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	}

	email := strings.ToLower(ghUser.Email)
	if email == "" {
		email = fmt.Sprintf("%s@users.noreply.github.com", strings.ToLower(ghUser.Login))
	}

	// OAuth accounts have no password; store a hash of random bytes so the
	// column stays non-null and the password can never match.
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(randomBytes)), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Username:     ghUser.Login,
		PasswordHash: string(hashed),
		FullName:     ghUser.Name,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

func (s *GitHubService) fetchGithubUser(ctx context.Context, accessToken string) (*githubUser, error) {
	var user githubUser
	if err := s.doAPIRequest(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	if user.Login == "" {
		return nil, fmt.Errorf("empty user response")
	}
	return &user, nil
}

// CreateBranchForTask returns a branch name for the task. When a repository
// and API token are configured the ref is created on GitHub; otherwise only
// the generated name is returned.
func (s *GitHubService) CreateBranchForTask(ctx context.Context, task *models.Task) (string, error) {
	branch, err := utils.GenerateBranchName(task.ID, task.Title)
	if err != nil {
		return "", fmt.Errorf("failed to generate branch name: %w", err)
	}

	if s.repo == "" || s.apiToken == "" {
		return branch, nil
	}

	var repoInfo struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := s.doAPIRequest(ctx, http.MethodGet, "/repos/"+s.repo, s.apiToken, nil, &repoInfo); err != nil {
		return "", fmt.Errorf("%w: fetch repository: %v", ErrGithubUpstream, err)
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	refPath := fmt.Sprintf("/repos/%s/git/ref/heads/%s", s.repo, repoInfo.DefaultBranch)
	if err := s.doAPIRequest(ctx, http.MethodGet, refPath, s.apiToken, nil, &ref); err != nil {
		return "", fmt.Errorf("%w: fetch default branch ref: %v", ErrGithubUpstream, err)
	}

	body := map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": ref.Object.SHA,
	}
	if err := s.doAPIRequest(ctx, http.MethodPost, "/repos/"+s.repo+"/git/refs", s.apiToken, body, nil); err != nil {
		return "", fmt.Errorf("%w: create ref: %v", ErrGithubUpstream, err)
	}

	return branch, nil
}

func (s *GitHubService) doAPIRequest(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = strings.NewReader(string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiBaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(payload))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
