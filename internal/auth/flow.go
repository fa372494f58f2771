package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// DefaultCallbackPort is the first loopback port tried for the redirect.
	DefaultCallbackPort = 8080

	// CallbackTimeout bounds the wait for the browser redirect.
	CallbackTimeout = 5 * time.Minute

	// ExchangeTimeout bounds the code-for-token exchange.
	ExchangeTimeout = 30 * time.Second

	// maxPortAttempts is the number of consecutive ports tried.
	maxPortAttempts = 5

	promptMessage = "Please complete authentication in your browser."

	successPage = "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>"
)

// LocalServerFlow runs the installed-app consent flow: it opens the consent
// page in a browser and receives the authorization code on a loopback server.
type LocalServerFlow struct {
	// Port is the first port tried. Zero picks an ephemeral port.
	Port int

	// Prompt receives the consent URL. May be nil.
	Prompt io.Writer

	// OpenBrowser opens the consent URL. Defaults to the system browser.
	OpenBrowser func(url string) error

	// Timeout bounds the wait for the redirect. Defaults to CallbackTimeout.
	Timeout time.Duration

	Log zerolog.Logger
}

// NewLocalServerFlow returns a flow listening from port onwards.
func NewLocalServerFlow(port int, prompt io.Writer, log zerolog.Logger) *LocalServerFlow {
	return &LocalServerFlow{
		Port:        port,
		Prompt:      prompt,
		OpenBrowser: browser.OpenURL,
		Timeout:     CallbackTimeout,
		Log:         log,
	}
}

type callbackResult struct {
	code string
	err  error
}

// Authorize implements Authorizer.
func (f *LocalServerFlow) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := listenLoopback(f.Port)
	if err != nil {
		return nil, fmt.Errorf("could not bind to local port for OAuth callback: %w", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	flowCfg := *cfg
	flowCfg.RedirectURL = fmt.Sprintf("http://localhost:%d/", port)

	verifier := oauth2.GenerateVerifier()
	state := uuid.NewString()
	authURL := flowCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)

	resultCh := make(chan callbackResult, 1)
	deliver := func(r callbackResult) {
		select {
		case resultCh <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("code") && !q.Has("state") && !q.Has("error") {
			// Not the redirect (favicon, preconnect); keep waiting.
			http.NotFound(w, r)
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "Authorization denied", http.StatusForbidden)
			deliver(callbackResult{err: fmt.Errorf("consent denied: %s", e)})
			return
		}
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			deliver(callbackResult{err: errors.New("state mismatch in callback")})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			deliver(callbackResult{err: errors.New("no code in callback")})
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, successPage)
		deliver(callbackResult{code: code})
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			deliver(callbackResult{err: err})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	f.Log.Info().Str("redirect", flowCfg.RedirectURL).Str("url", authURL).Msg("waiting for consent")
	if f.Prompt != nil {
		fmt.Fprintln(f.Prompt, promptMessage)
		fmt.Fprintln(f.Prompt, authURL)
	}
	if f.OpenBrowser != nil {
		if err := f.OpenBrowser(authURL); err != nil {
			f.Log.Warn().Err(err).Msg("could not open browser")
		}
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = CallbackTimeout
	}

	var code string
	select {
	case res := <-resultCh:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	case <-time.After(timeout):
		return nil, errors.New("oauth callback timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, ExchangeTimeout)
	defer cancel()

	token, err := flowCfg.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// listenLoopback binds the first free port from start. Port zero binds an
// ephemeral port.
func listenLoopback(start int) (net.Listener, error) {
	if start == 0 {
		return net.Listen("tcp", "localhost:0")
	}
	var lastErr error
	for i := 0; i < maxPortAttempts; i++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", start+i))
		if err == nil {
			return listener, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
