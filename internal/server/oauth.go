package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/syllabus/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthResult is the outcome of one authorization-code flow: a token on
// success, an error otherwise.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error { return o.err }

// OAuthHandler catches the redirect leg of the authorization-code flow on the
// loopback server started by `syllabus sync login`. It validates the CSRF
// state, exchanges the code, and delivers exactly one OAuthResult.
type OAuthHandler struct {
	config *oauth2.Config
	state  string

	mu      sync.Mutex
	claimed bool

	once    sync.Once
	results chan OAuthResult
}

// NewOAuthHandler creates a handler expecting the given state token. The
// state must be random per login attempt; a mismatched callback is rejected.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:  config,
		state:   state,
		results: make(chan OAuthResult, 1),
	}
}

// Routes reports the paths this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

// claim marks the callback as consumed. Only the first request wins; retries
// and stray hits get a 400.
func (h *OAuthHandler) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.claimed {
		return false
	}
	h.claimed = true
	return true
}

func (h *OAuthHandler) fail(w http.ResponseWriter, status int, public string, err error) {
	h.Send(OAuthResult{err: err})
	http.Error(w, public, status)
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.claim() {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.fail(w, http.StatusBadRequest, "Invalid state parameter",
			fmt.Errorf("%w: invalid state parameter", shared.ErrAuthFailed))
		return
	}

	code := query.Get("code")
	if code == "" {
		h.fail(w, http.StatusBadRequest, "Authorization failed",
			fmt.Errorf("%w: %s - %s", shared.ErrAuthFailed, query.Get("error"), query.Get("error_description")))
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Token exchange failed",
			fmt.Errorf("token exchange failed: %w", err))
		return
	}

	h.Send(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send delivers a result. Safe to call from multiple paths; only the first
// call lands, and the channel is closed after it.
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel the flow outcome arrives on. It receives exactly
// one value and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Sync Connected</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .card { text-align: center; background: white; padding: 2rem;
                border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #7b5cd6; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>&#10003; Sync Connected</h1>
        <p>Your listening progress will now sync. You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
