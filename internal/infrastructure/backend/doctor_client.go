package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doctor-admin-dashboard/config"
	"doctor-admin-dashboard/internal/dashboard"

	"github.com/google/uuid"
)

const (
	doctorListPath   = "/api/doctor/admin"
	doctorStatusPath = "/api/doctor/admin/%s/status"

	// cap on how much of an error body is quoted back in errors
	maxErrorBody = 512
)

// DoctorClient talks to the doctor admin endpoints of the backend.
type DoctorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDoctorClient(cfg config.BackendConfig) (*DoctorClient, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DoctorClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *DoctorClient) ListDoctors(ctx context.Context) ([]dashboard.Doctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+doctorListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	var doctors []dashboard.Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		return nil, fmt.Errorf("decode doctor list: %w", err)
	}
	return doctors, nil
}

type statusRequest struct {
	IsActive bool `json:"isActive"`
}

// SetDoctorStatus sends the desired flag. Any 2xx counts as success and the body is ignored.
func (c *DoctorClient) SetDoctorStatus(ctx context.Context, doctorID uuid.UUID, isActive bool) error {
	body, err := json.Marshal(statusRequest{IsActive: isActive})
	if err != nil {
		return fmt.Errorf("encode status request: %w", err)
	}

	endpoint := c.baseURL + fmt.Sprintf(doctorStatusPath, url.PathEscape(doctorID.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update doctor %s status: %w", doctorID, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("update doctor %s status: %w", doctorID, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend responded %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Body)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
}
