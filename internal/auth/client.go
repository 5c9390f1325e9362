package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

var (
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthFailed         = errors.New("authentication failed")
)

// Error codes returned by the hosted auth service.
const (
	codeEmailNotConfirmed  = "email_not_confirmed"
	codeInvalidCredentials = "invalid_credentials"
)

// Error is a failed auth call. It matches one of the sentinel errors with
// errors.Is based on the service's error_code, never on its message text.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth service returned %d (%s): %s", e.Status, e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrEmailNotConfirmed:
		return e.Code == codeEmailNotConfirmed
	case ErrInvalidCredentials:
		return e.Code == codeInvalidCredentials
	case ErrAuthFailed:
		return true
	}

	return false
}

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	UserID       uuid.UUID `json:"-"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, http: httpClient}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userBody struct {
	ID uuid.UUID `json:"id"`
}

type tokenBody struct {
	Session
	User userBody `json:"user"`
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var body tokenBody
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", credentials{Email: email, Password: password}, &body); err != nil {
		return nil, err
	}

	s := body.Session
	s.UserID = body.User.ID

	return &s, nil
}

// SignUp registers a user. The returned session is nil when the service
// requires email confirmation first.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var body tokenBody
	if err := c.post(ctx, "/auth/v1/signup", credentials{Email: email, Password: password}, &body); err != nil {
		return nil, err
	}

	if body.AccessToken == "" {
		return nil, nil
	}

	s := body.Session
	s.UserID = body.User.ID

	return &s, nil
}

type errorBody struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building auth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling auth service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading auth response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)

		msg := eb.Msg
		if msg == "" {
			msg = eb.ErrorDescription
		}

		return &Error{Status: resp.StatusCode, Code: eb.ErrorCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding auth response: %w", err)
	}

	return nil
}

// Message is the text shown on the sign-in form for err.
func Message(err error, lang i18n.Language) string {
	if errors.Is(err, ErrEmailNotConfirmed) {
		return i18n.T(lang, i18n.KeyEmailNotConfirmed)
	}

	return i18n.T(lang, i18n.KeyAuthError)
}
