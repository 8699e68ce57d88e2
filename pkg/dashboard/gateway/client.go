// Package gateway is the dashboard's typed client for the administration API.
// Every call funnels through one request path that attaches the bearer token
// from the session store and normalizes all failures into a tagged error
// taxonomy (TransportError, APIError, ValidationError).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/university/admin-system/pkg/dashboard/session"
)

const defaultTimeout = 30 * time.Second

// Client talks to the administration API. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// NewClient creates a Client rooted at baseURL (e.g. "http://localhost:8080").
// Credentials are read live from sessions on every request.
func NewClient(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		sessions: sessions,
	}
}

// --- Wire types ---

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// AuthResponse is the login success body.
type AuthResponse struct {
	Token     string       `json:"token"`
	Type      string       `json:"type"`
	ExpiresIn int64        `json:"expiresIn"`
	User      session.User `json:"user"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Student mirrors the server's student record wire format.
type Student struct {
	ID        string `json:"id,omitempty"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	CIN       string `json:"cin"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	Level     string `json:"niveau"`
	Gender    string `json:"genre"`
	BirthDate string `json:"dateDeNaissance"`
}

// Course mirrors the server's course record wire format.
type Course struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"nomCours"`
	Room       string `json:"salle"`
	Instructor string `json:"professeur"`
	Day        string `json:"jour"`
	StartTime  string `json:"heureDebut"`
	EndTime    string `json:"heureFin"`
}

// --- Auth endpoints ---

// Login authenticates and, on success, establishes the session (user record
// plus bearer token) in the session store.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, false, &resp); err != nil {
		return nil, err
	}
	if err := c.sessions.Establish(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the token server-side, then clears the local session. The
// local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, true, nil)
	if clearErr := c.sessions.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// UpdatePassword validates the form locally, then posts the change. Local
// validation failures short-circuit with a ValidationError before any
// request is made. Returns the server's plain-text confirmation.
func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (string, error) {
	if err := validateNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return "", err
	}

	var confirmation string
	if err := c.do(ctx, http.MethodPost, "/api/auth/update-password", req, true, &confirmation); err != nil {
		return "", err
	}
	return confirmation, nil
}

// --- Student endpoints ---

func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, true, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id string) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodGet, "/api/students/"+id, nil, true, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) CreateStudent(ctx context.Context, input Student) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodPost, "/api/students", input, true, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id string, input Student) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodPut, "/api/students/"+id, input, true, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/students/"+id, nil, true, nil)
}

// --- Course endpoints ---

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, true, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+id, nil, true, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateCourse(ctx context.Context, input Course) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", input, true, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, input Course) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+id, input, true, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+id, nil, true, nil)
}

// --- Request plumbing ---

// do performs one request. When requireAuth is true and a token exists, the
// Authorization header is attached; login and register pass false because
// they must succeed before any token exists.
//
// Non-2xx responses become an APIError whose message is taken from the JSON
// "message" field when the body parses as JSON, from the raw body text when
// non-empty, and "HTTP <status>" otherwise. 2xx responses are decoded
// according to the declared content type: JSON into out, anything else as
// text into *string.
func (c *Client) do(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requireAuth {
		if token := c.sessions.Get().Token; token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
		return nil
	}

	if text, ok := out.(*string); ok {
		*text = string(data)
		return nil
	}
	return fmt.Errorf("gateway: unexpected content type %q", resp.Header.Get("Content-Type"))
}

// errorMessage extracts the server's explanation from a non-2xx body.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// validateNewPassword applies the password form rules locally: minimum
// length, confirmation match, and character-class complexity.
func validateNewPassword(newPassword, confirmPassword string) error {
	if len(newPassword) < 8 {
		return &ValidationError{Message: "Password must be at least 8 characters long"}
	}
	if newPassword != confirmPassword {
		return &ValidationError{Message: "Passwords do not match"}
	}

	var lower, upper, digit, special bool
	for _, r := range newPassword {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(".$@!%*?&", r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return &ValidationError{Message: "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character (.$@$!%*?&)"}
	}
	return nil
}
