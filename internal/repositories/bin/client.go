package bin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AJV009/oracle11/internal/models"
)

const (
	accessKeyHeader = "X-Access-Key"

	defaultTimeout = 30 * time.Second
)

// ErrRemoteUnavailable is returned when the document host cannot be
// reached or answers with a non-success status
var ErrRemoteUnavailable = errors.New("document host unavailable")

// Config holds configuration for the remote document client
type Config struct {
	// BaseURL is the document host endpoint, without a trailing slash
	BaseURL string

	// AccessKey is the credential sent with every request
	AccessKey string

	// HTTPClient is optional; a client with a 30s timeout is used when nil
	HTTPClient *http.Client
}

// client implements the Repository interface against a JSON document host
type client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// recordEnvelope is the host's read response wrapper
type recordEnvelope struct {
	Record *models.GameDocument `json:"record"`
}

// NewClient creates a new remote document client
func NewClient(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	if cfg.AccessKey == "" {
		return nil, errors.New("access key cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &client{
		baseURL:    cfg.BaseURL,
		accessKey:  cfg.AccessKey,
		httpClient: httpClient,
	}, nil
}

// GetLatest retrieves the latest version of a shared document
func (c *client) GetLatest(ctx context.Context, input *GetLatestInput) (*models.GameDocument, error) {
	if input == nil || input.ResourceID == "" {
		return nil, errors.New("input and resource ID cannot be empty")
	}

	url := fmt.Sprintf("%s/%s/latest", c.baseURL, input.ResourceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(accessKeyHeader, c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemoteUnavailable, resp.StatusCode, string(body))
	}

	var envelope recordEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if envelope.Record == nil {
		return nil, errors.New("document host returned an empty record")
	}

	return envelope.Record, nil
}

// Update replaces a shared document wholesale
func (c *client) Update(ctx context.Context, input *UpdateInput) error {
	if input == nil || input.ResourceID == "" {
		return errors.New("input and resource ID cannot be empty")
	}

	if input.Document == nil {
		return errors.New("document cannot be nil")
	}

	body, err := json.Marshal(input.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, input.ResourceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessKeyHeader, c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrRemoteUnavailable, resp.StatusCode, string(respBody))
	}

	return nil
}
