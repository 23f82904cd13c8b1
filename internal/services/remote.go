// HTTP implementation of [Service] against the syllabus sync backend.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://sync.syllabus.dev"
	statePath      = "/v1/state"
	healthPath     = "/v1/health"
)

// RemoteService implements the Service interface over the sync backend's
// JSON API. Uses [oauth2] for authentication.
type RemoteService struct {
	baseURL    string
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
}

// NewRemoteService creates a sync client from application config. The
// returned service is unauthenticated; call Authenticate or RestoreToken
// before state operations.
func NewRemoteService(cfg shared.SyncConfig) (*RemoteService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: sync client_id", shared.ErrMissingConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://127.0.0.1:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"state.read", "state.write"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  baseURL + "/oauth/authorize",
			TokenURL: baseURL + "/oauth/token",
		},
	}

	return &RemoteService{
		baseURL:    baseURL,
		config:     config,
		httpClient: http.DefaultClient,
	}, nil
}

func (s *RemoteService) Name() string {
	return "syllabus-sync"
}

// OAuthConfig exposes the OAuth2 config for the loopback callback server.
func (s *RemoteService) OAuthConfig() *oauth2.Config {
	return s.config
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *RemoteService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Authenticate performs OAuth2 authentication with the backend. Expects
// either an "access_token" or "auth_code" in credentials.
func (s *RemoteService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{AccessToken: accessToken}
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code in credentials", shared.ErrAuthFailed)
}

// RestoreToken resumes a previously stored session without a new login.
func (s *RemoteService) RestoreToken(ctx context.Context, token *oauth2.Token) {
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
}

// Token returns the active token, for session persistence after login.
func (s *RemoteService) Token() *oauth2.Token {
	return s.token
}

// doRequest performs an authenticated HTTP request against the backend.
func (s *RemoteService) doRequest(ctx context.Context, method, path string, body, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSyncRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrSyncRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PullState retrieves the remote syllabus state. A backend that has never
// seen this account returns an empty state, not an error.
func (s *RemoteService) PullState(ctx context.Context) (models.SyllabusState, error) {
	var state models.SyllabusState
	if err := s.doRequest(ctx, http.MethodGet, statePath, nil, &state); err != nil {
		return models.NewSyllabusState(), err
	}
	if state.Records == nil {
		state = models.NewSyllabusState()
	}
	return state, nil
}

// PushState uploads the local state wholesale, replacing the remote copy.
func (s *RemoteService) PushState(ctx context.Context, state models.SyllabusState) error {
	return s.doRequest(ctx, http.MethodPut, statePath, state, nil)
}

// Health checks backend reachability without touching state.
func (s *RemoteService) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
