package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"comanda-service/internal/domain"

	"go.uber.org/zap"
)

// Client talks to the /restaurante API. Every request goes through do, which
// attaches the bearer token and turns unauthorized answers into a cleared
// session plus one navigation to login.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	nav     Navigator
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, session *Session, nav Navigator, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if nav == nil {
		nav = NavigatorFunc(func() {})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		nav:     nav,
		log:     log,
	}
}

func (c *Client) Session() *Session { return c.session }

type LoginResult struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
}

// Login authenticates and starts the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, &domain.ValidationError{Message: "email and password are required"}
	}
	var res LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &res); err != nil {
		return nil, err
	}
	c.session.set(res.Token, domain.Identity{UserID: res.ID, Name: res.Name, Role: res.Role})
	c.log.Info("logged in", zap.Uint64("user_id", res.ID), zap.String("role", string(res.Role)))
	return &res, nil
}

// Logout revokes the session on the server when possible. Local state is
// cleared and the user is sent to login once, whatever the outcome.
func (c *Client) Logout(ctx context.Context) {
	navigated := false
	if c.session.Token() != "" {
		if err := c.do(ctx, http.MethodPost, "/logout", nil, nil, nil); err != nil {
			c.log.Warn("logout failed", zap.Error(err))
			var authErr *domain.AuthError
			navigated = errors.As(err, &authErr)
		}
	}
	c.session.clear()
	if !navigated {
		c.nav.ToLogin()
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ErrCancelled
		}
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return &ServerError{Status: resp.StatusCode, Message: "malformed response"}
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if token != "" && c.session.clear() {
			c.log.Info("session rejected, returning to login", zap.String("path", path))
			c.nav.ToLogin()
		}
		return apiError(resp.StatusCode, env)
	}
	if resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, env)
	}
	if !env.Success {
		return &ServerError{Status: resp.StatusCode, Message: env.message()}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &ServerError{Status: resp.StatusCode, Message: "malformed response data"}
		}
	}
	return nil
}
