// Package client talks to the GameBalance API on behalf of one local user.
// Without a stored access token it runs in demo mode: reads return fixed
// defaults and writes succeed without touching the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamebalance/internal/app/game"
	"gamebalance/internal/app/session"
	"gamebalance/internal/app/stats"
	"gamebalance/internal/app/user"
	"gamebalance/internal/defaults"
	"gamebalance/internal/identity"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const DemoSessionID = "demo-session"

var ErrUnauthorized = errors.New("unauthorized: sign in again")

// APIError is a non-2xx answer other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type SignupInput struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	state      *State
	validate   *validator.Validate
	logger     *zap.SugaredLogger
}

func New(baseURL string, httpClient *http.Client, state *State, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if state == nil {
		state = &State{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		state:      state,
		validate:   validator.New(),
		logger:     logger.Sugar(),
	}
}

func (c *Client) State() *State {
	return c.state
}

func (c *Client) Demo() bool {
	return c.state.Demo()
}

// Signup validates the input locally before creating the account.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*identity.Identity, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := c.validate.Struct(in); err != nil {
		return nil, signupValidationError(err)
	}

	var resp struct {
		User *identity.Identity `json:"user"`
	}
	body := map[string]string{
		"email":    in.Email,
		"password": in.Password,
		"name":     in.Name,
		"username": in.Username,
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Signin stores the access token and account fields in the local state.
func (c *Client) Signin(ctx context.Context, email, password string) (*identity.Identity, error) {
	var resp struct {
		AccessToken string             `json:"accessToken"`
		User        *identity.Identity `json:"user"`
	}
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, errors.New("signin response is missing the access token")
	}

	c.state.AccessToken = resp.AccessToken
	c.state.UserID = resp.User.UserID
	c.state.Email = resp.User.Email
	c.state.Username = resp.User.Username
	if err := c.state.Save(); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Signout() error {
	c.state.SignOut()
	return c.state.Save()
}

func (c *Client) GetProfile(ctx context.Context) (*user.Profile, error) {
	if c.Demo() {
		demo := defaults.DemoProfile()
		return &user.Profile{ID: demo.ID, Email: demo.Email, Name: demo.Name, Username: demo.Username}, nil
	}
	resp, err := c.profileAndSettings(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Profile, nil
}

func (c *Client) GetSettings(ctx context.Context) (*defaults.Settings, error) {
	if c.Demo() {
		if c.state.DemoSettings != nil {
			s := *c.state.DemoSettings
			return &s, nil
		}
		s := defaults.DefaultSettings()
		return &s, nil
	}
	resp, err := c.profileAndSettings(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Settings, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update user.ProfileUpdate) error {
	if c.Demo() {
		return nil
	}
	return c.do(ctx, http.MethodPut, "/user/profile", update, nil)
}

// UpdateSettings replaces the settings. In demo mode they are kept in the local state.
func (c *Client) UpdateSettings(ctx context.Context, settings defaults.Settings) error {
	if c.Demo() {
		c.state.DemoSettings = &settings
		return c.state.Save()
	}
	return c.do(ctx, http.MethodPut, "/user/settings", settings, nil)
}

func (c *Client) StartSession(ctx context.Context, g defaults.Game) (string, error) {
	if c.Demo() {
		return DemoSessionID, nil
	}
	req := session.StartSessionRequest{GameName: g.Name, GameIcon: g.Icon, GameColor: g.Color}
	var resp session.StartSessionResponse
	if err := c.do(ctx, http.MethodPost, "/session/start", req, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

func (c *Client) EndSession(ctx context.Context, durationSeconds int64) error {
	if c.Demo() {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/session/end", map[string]int64{"duration": durationSeconds}, nil)
}

func (c *Client) GetSessions(ctx context.Context) ([]*session.Session, error) {
	if c.Demo() {
		return []*session.Session{}, nil
	}
	var resp session.SessionListResponse
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []*session.Session{}
	}
	return resp.Sessions, nil
}

func (c *Client) GetStats(ctx context.Context) (*stats.Stats, error) {
	if c.Demo() {
		return DemoStats(), nil
	}
	var resp stats.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &resp); err != nil {
		return nil, err
	}
	if resp.DailyData == nil {
		resp.DailyData = map[string]int{}
	}
	return &resp, nil
}

// ListGames returns the server catalog, or the built-in catalog in demo mode.
func (c *Client) ListGames(ctx context.Context) ([]defaults.Game, error) {
	if c.Demo() {
		return defaults.Games(), nil
	}
	var resp game.GameListResponse
	if err := c.do(ctx, http.MethodGet, "/games", nil, &resp); err != nil {
		return nil, err
	}
	games := make([]defaults.Game, 0, len(resp.Games))
	for _, g := range resp.Games {
		games = append(games, defaults.Game{Slug: g.Slug, Name: g.Name, Icon: g.Icon, Color: g.Color})
	}
	return games, nil
}

func DemoStats() *stats.Stats {
	d := defaults.DemoStats()
	return &stats.Stats{
		TodayMinutes:  d.TodayMinutes,
		WeeklyTotal:   d.WeeklyTotal,
		DailyData:     map[string]int{},
		TotalSessions: d.TotalSessions,
	}
}

func (c *Client) profileAndSettings(ctx context.Context) (*user.ProfileResponse, error) {
	var resp user.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Settings == nil {
		s := defaults.DefaultSettings()
		resp.Settings = &s
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.state.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.state.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && path != "/auth/signin" {
		c.logger.Debugw("request rejected", "method", method, "path", path)
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func signupValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "email" {
			return errors.New("invalid email format")
		}
		return errors.New("email is required")
	case "Password":
		return errors.New("password must be at least 6 characters")
	case "Name":
		return errors.New("name is required")
	case "Username":
		return errors.New("username is required")
	}
	return err
}
