package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/the-truth-must-out/internal/common"
	"github.com/Veraticus/the-truth-must-out/internal/model"
)

// Predictor classifies a single text.
type Predictor interface {
	Predict(ctx context.Context, text string) (model.AnalysisResult, error)
}

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse is the success body of POST /predict.
type PredictResponse struct {
	Label            string   `json:"label"`
	TruthProbability *float64 `json:"truth_probability"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Model   string `json:"model"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Client talks to the classification service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure we implement the interface.
var _ Predictor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict sends text to POST /predict and validates the verdict.
func (c *Client) Predict(ctx context.Context, text string) (model.AnalysisResult, error) {
	body, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp PredictResponse
	if err := c.do(req, &resp); err != nil {
		return model.AnalysisResult{}, err
	}

	if resp.TruthProbability == nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: missing truth_probability", common.ErrMalformedResponse)
	}

	result, err := model.NewAnalysisResult(*resp.TruthProbability, resp.Label)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: %w", common.ErrMalformedResponse, err)
	}

	return result, nil
}

// Info fetches the service banner from GET /.
func (c *Client) Info(ctx context.Context) (*InfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp InfoResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks the service health via GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp HealthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	slog.Debug("Sending request to classification service",
		"method", req.Method,
		"url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	return nil
}

// APIError is a non-2xx response from the service.
type APIError struct {
	// Detail is the string "detail" field of the error body, if any.
	Detail     string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("classification service returned status %d: %s", e.StatusCode, e.Detail)
	}
	if e.Body != "" {
		return fmt.Sprintf("classification service returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("classification service returned status %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}

	// FastAPI validation errors carry a list in "detail"; only strings are shown.
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			apiErr.Detail = strings.TrimSpace(detail)
		}
	}

	return apiErr
}

// DetailFrom returns the service-provided detail message carried by err.
func DetailFrom(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
