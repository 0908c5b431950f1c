package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"

	ffgithub "featureflow.dev/featureflow/internal/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// OpenPRs is served by the list endpoint, in order
	OpenPRs []*github.PullRequest
	// CreatedPRs stores PRs that were created (for testing)
	CreatedPRs []*github.PullRequest
	// CreateAuth records the basic-auth user and password of each create request
	CreateAuth []BasicAuth
	// ListAuthHeaders records the Authorization header of each list request
	ListAuthHeaders []string
	// ListRequests counts list calls, one per page
	ListRequests int
	// StatusOverrides forces a status for "METHOD path" keys
	StatusOverrides map[string]int
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu sync.Mutex
}

// BasicAuth is a captured basic-auth pair
type BasicAuth struct {
	Username string
	Password string
	OK       bool
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		StatusOverrides: make(map[string]int),
		Owner:           "owner",
		Repo:            "repo",
	}
}

// PullsPath is the list/create endpoint of the configured repository
func (c *MockGitHubServerConfig) PullsPath() string {
	return "/repos/" + c.Owner + "/" + c.Repo + "/pulls"
}

// NewMockGitHubServer creates an httptest server that mocks the pull request endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	basePath := config.PullsPath()

	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()

		if status, ok := config.StatusOverrides[r.Method+" "+basePath]; ok {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}

		switch r.Method {
		case http.MethodPost:
			user, pass, ok := r.BasicAuth()
			config.CreateAuth = append(config.CreateAuth, BasicAuth{Username: user, Password: pass, OK: ok})

			var newPR github.NewPullRequest
			if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			prNumber := len(config.CreatedPRs) + 1
			pr := &github.PullRequest{
				Number:  github.Int(prNumber),
				Title:   newPR.Title,
				Body:    newPR.Body,
				State:   github.String("open"),
				Head:    &github.PullRequestBranch{Label: newPR.Head},
				Base:    &github.PullRequestBranch{Ref: newPR.Base},
				HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, prNumber)),
			}
			config.CreatedPRs = append(config.CreatedPRs, pr)
			writeJSON(w, http.StatusCreated, pr)

		case http.MethodGet:
			config.ListRequests++
			config.ListAuthHeaders = append(config.ListAuthHeaders, r.Header.Get("Authorization"))

			state := r.URL.Query().Get("state")
			if state != "" && state != "open" && state != "all" {
				writeJSON(w, http.StatusOK, []*github.PullRequest{})
				return
			}

			page := atoiDefault(r.URL.Query().Get("page"), 1)
			perPage := atoiDefault(r.URL.Query().Get("per_page"), 30)
			start := (page - 1) * perPage
			end := start + perPage
			if start > len(config.OpenPRs) {
				start = len(config.OpenPRs)
			}
			if end > len(config.OpenPRs) {
				end = len(config.OpenPRs)
			} else if end < len(config.OpenPRs) {
				next := fmt.Sprintf("http://%s%s?page=%d&per_page=%d&state=%s", r.Host, basePath, page+1, perPage, state)
				w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
			}
			writeJSON(w, http.StatusOK, config.OpenPRs[start:end])

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient starts a mock server and returns a RealClient pointed at it,
// along with the owner and repo the server answers for.
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig, token string) (*ffgithub.RealClient, string, string) {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)

	client, err := ffgithub.NewRealClient(context.Background(), ffgithub.ClientOptions{
		BaseURL: server.URL,
		Token:   token,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, config.Owner, config.Repo
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
