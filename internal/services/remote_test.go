package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
)

func testSyncConfig(baseURL string) shared.SyncConfig {
	return shared.SyncConfig{
		BaseURL:      baseURL,
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
	}
}

func authedService(t *testing.T, baseURL string) *RemoteService {
	t.Helper()
	srv, err := NewRemoteService(testSyncConfig(baseURL))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "test_token"}); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	return srv
}

func TestNewRemoteService(t *testing.T) {
	t.Run("With Valid Config", func(t *testing.T) {
		srv, err := NewRemoteService(testSyncConfig(""))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.Name() != "syllabus-sync" {
			t.Errorf("expected service name 'syllabus-sync', got %s", srv.Name())
		}
		if srv.baseURL != defaultBaseURL {
			t.Errorf("expected default base URL, got %s", srv.baseURL)
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		_, err := NewRemoteService(shared.SyncConfig{})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestGetAuthURL(t *testing.T) {
	srv, err := NewRemoteService(testSyncConfig("https://sync.example.com"))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	authURL := srv.GetAuthURL("test_state")
	if !strings.Contains(authURL, "sync.example.com") {
		t.Error("auth URL should contain backend domain")
	}
	if !strings.Contains(authURL, "test_client_id") {
		t.Error("auth URL should contain client_id")
	}
	if !strings.Contains(authURL, "test_state") {
		t.Error("auth URL should contain state")
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("With Access Token", func(t *testing.T) {
		srv, err := NewRemoteService(testSyncConfig(""))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
			t.Errorf("expected no error with access token, got %v", err)
		}
		if srv.Token() == nil {
			t.Error("expected token to be stored")
		}
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		srv, err := NewRemoteService(testSyncConfig(""))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		err = srv.Authenticate(context.Background(), map[string]string{})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestPullState(t *testing.T) {
	t.Run("Returns Remote State", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != statePath || r.Method != http.MethodGet {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
				t.Error("expected bearer token")
			}
			state := models.NewSyllabusState()
			state.Set("bach-mass-b-minor", models.ItemRecord{Checked: true, Notes: "listened twice"})
			json.NewEncoder(w).Encode(state)
		}))
		defer ts.Close()

		state, err := authedService(t, ts.URL).PullState(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		rec := state.Record("bach-mass-b-minor")
		if !rec.Checked || rec.Notes != "listened twice" {
			t.Errorf("unexpected record: %+v", rec)
		}
	})

	t.Run("Empty Body Yields Empty State", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"schema_version": 1})
		}))
		defer ts.Close()

		state, err := authedService(t, ts.URL).PullState(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if state.Records == nil {
			t.Error("expected initialized records map")
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		srv, err := NewRemoteService(testSyncConfig(""))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		_, err = srv.PullState(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		_, err := authedService(t, ts.URL).PullState(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		_, err := authedService(t, ts.URL).PullState(context.Background())
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestPushState(t *testing.T) {
	t.Run("Uploads State Wholesale", func(t *testing.T) {
		var received models.SyllabusState
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != statePath || r.Method != http.MethodPut {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		state := models.NewSyllabusState()
		state.Set("mozart-don-giovanni", models.ItemRecord{Checked: true})

		if err := authedService(t, ts.URL).PushState(context.Background(), state); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !received.Record("mozart-don-giovanni").Checked {
			t.Error("pushed record not received by backend")
		}
	})
}

func TestHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != healthPath {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		srv, err := NewRemoteService(testSyncConfig(ts.URL))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if err := srv.Health(context.Background()); err != nil {
			t.Errorf("expected healthy, got %v", err)
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv, err := NewRemoteService(testSyncConfig("http://127.0.0.1:1"))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if err := srv.Health(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
