package infra

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

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrGoTrueTokenInvalido = errors.New("gotrue: token invalido o expirado")
	ErrGoTrueNoEncontrada  = errors.New("gotrue: identidad no encontrada")
)

// goTrueUser is the user object of the GoTrue REST API.
type goTrueUser struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at,omitempty"`
	UserMetadata     map[string]interface{} `json:"user_metadata"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func (u goTrueUser) identidad() (*model.Identidad, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, fmt.Errorf("gotrue: invalid user id %q: %w", u.ID, err)
	}
	return &model.Identidad{
		ID:              id,
		Email:           u.Email,
		EmailConfirmado: u.EmailConfirmedAt != nil,
		Metadata:        u.UserMetadata,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}, nil
}

type goTrueCreateUser struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

type goTrueUpdateUser struct {
	Email        string `json:"email"`
	EmailConfirm bool   `json:"email_confirm"`
}

// goTrueError covers the error shapes of the different GoTrue versions.
type goTrueError struct {
	Code      interface{} `json:"code"`
	ErrorCode string      `json:"error_code"`
	Msg       string      `json:"msg"`
	Message   string      `json:"message"`
	ErrorDesc string      `json:"error_description"`
}

func (e goTrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDesc} {
		if s != "" {
			return s
		}
	}
	return ""
}

// GoTrueClient is the remote credential store (GoTrue / Supabase Auth). Caller
// tokens are resolved with GET /user; administrative calls use the service key.
// Every call goes through the circuit breaker.
type GoTrueClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewGoTrueClient(baseURL, serviceKey string, timeout time.Duration, cb *CircuitBreaker) *GoTrueClient {
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	return &GoTrueClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *GoTrueClient) Breaker() *CircuitBreaker { return c.cb }

// ResolveToken returns the identity owning the caller's access token.
func (c *GoTrueClient) ResolveToken(ctx context.Context, token string) (*model.Identidad, error) {
	var u goTrueUser
	err := c.do(ctx, http.MethodGet, "/user", token, nil, &u)
	if err != nil {
		var se *goTrueStatusError
		if errors.As(err, &se) && (se.status == http.StatusUnauthorized || se.status == http.StatusForbidden) {
			return nil, ErrGoTrueTokenInvalido
		}
		return nil, err
	}
	return u.identidad()
}

// Create registers a confirmed identity carrying metadata.name.
func (c *GoTrueClient) Create(ctx context.Context, nueva model.NuevaIdentidad) (*model.Identidad, error) {
	body := goTrueCreateUser{
		Email:        strings.TrimSpace(nueva.Email),
		Password:     nueva.Password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"name": nueva.Nombre},
	}
	var u goTrueUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, body, &u); err != nil {
		if isEmailExists(err) {
			return nil, repository.ErrEmailDuplicado
		}
		return nil, err
	}
	return u.identidad()
}

func (c *GoTrueClient) FindByID(ctx context.Context, id uuid.UUID) (*model.Identidad, error) {
	var u goTrueUser
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id.String(), c.serviceKey, nil, &u); err != nil {
		return nil, notFound(err)
	}
	return u.identidad()
}

func (c *GoTrueClient) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	body := goTrueUpdateUser{Email: strings.TrimSpace(email), EmailConfirm: true}
	err := c.do(ctx, http.MethodPut, "/admin/users/"+id.String(), c.serviceKey, body, nil)
	if isEmailExists(err) {
		return repository.ErrEmailDuplicado
	}
	return notFound(err)
}

func (c *GoTrueClient) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(c.do(ctx, http.MethodDelete, "/admin/users/"+id.String(), c.serviceKey, nil, nil))
}

// ── transport ─────────────────────────────────────────────────────────────────

type goTrueStatusError struct {
	status int
	body   goTrueError
}

func (e *goTrueStatusError) Error() string {
	if t := e.body.text(); t != "" {
		return fmt.Sprintf("gotrue: status %d: %s", e.status, t)
	}
	return fmt.Sprintf("gotrue: status %d", e.status)
}

func isEmailExists(err error) bool {
	var se *goTrueStatusError
	if !errors.As(err, &se) {
		return false
	}
	if se.body.ErrorCode == "email_exists" || se.body.ErrorCode == "user_already_exists" {
		return true
	}
	return se.status == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(se.body.text()), "already been registered")
}

func notFound(err error) error {
	var se *goTrueStatusError
	if errors.As(err, &se) && se.status == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrGoTrueNoEncontrada, err)
	}
	return err
}

// do sends one JSON request. Non-2xx answers become *goTrueStatusError; only
// transport failures and 5xx answers count against the breaker.
func (c *GoTrueClient) do(ctx context.Context, method, path, bearer string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("gotrue: marshal payload: %w", err)
		}
	}

	return c.cb.Execute(func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return noTrip(fmt.Errorf("gotrue: create request: %w", err))
		}
		req.Header.Set("apikey", c.serviceKey)
		req.Header.Set("Authorization", "Bearer "+bearer)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return noTrip(fmt.Errorf("gotrue: %w", ctx.Err()))
			}
			return fmt.Errorf("gotrue: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			se := &goTrueStatusError{status: resp.StatusCode}
			_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&se.body)
			if resp.StatusCode >= 500 {
				return se
			}
			return noTrip(se)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return noTrip(fmt.Errorf("gotrue: decode response: %w", err))
		}
		return nil
	})
}
