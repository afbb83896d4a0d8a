// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Status  int // HTTP status code, set for ErrTypeStatus
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrMissingAnswer = &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no answer field"}
)

// Is reports whether target is a ClientError of the same type and message.
// This lets errors.Is match sentinels even when a copy carries a Cause.
func (e *ClientError) Is(target error) bool {
	var t *ClientError
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// TypeOf returns the ErrorType of err, or ErrTypeUnknown if err is not a
// *ClientError.
func TypeOf(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	defaultBaseURL       = "http://localhost:5000"
	defaultAskPath       = "/ask"
	defaultProbeQuestion = "ping"

	// maxErrorBody caps how much of a failed response body is kept in errors.
	maxErrorBody = 512
)

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the service base URL (default: http://localhost:5000)
	BaseURL string

	// AskPath is the path of the ask endpoint (default: /ask)
	AskPath string

	// ProbeQuestion is the placeholder question sent by Ping (default: "ping")
	ProbeQuestion string

	// Timeout bounds each request. Zero means no client-side timeout;
	// the backend's own response time bounds latency.
	Timeout time.Duration

	// Logger receives request diagnostics at debug level. Nil disables logging.
	Logger *zap.Logger

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       defaultBaseURL,
		AskPath:       defaultAskPath,
		ProbeQuestion: defaultProbeQuestion,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the ask endpoint.
//
// The Client is safe for concurrent use; it holds no mutable state after
// construction.
//
// Example:
//
//	client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: "http://localhost:5000"})
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal("backend not available:", err)
//	}
//	resp, err := client.Ask(ctx, "hello", []backend.Turn{backend.NewUserTurn("hello")})
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClientWithConfig creates a new client with custom configuration.
// Zero values are filled with defaults; the passed config is not modified.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.AskPath == "" {
		cfg.AskPath = defaultAskPath
	}
	if !strings.HasPrefix(cfg.AskPath, "/") {
		cfg.AskPath = "/" + cfg.AskPath
	}
	if cfg.ProbeQuestion == "" {
		cfg.ProbeQuestion = defaultProbeQuestion
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint returns the full URL of the ask endpoint.
func (c *Client) Endpoint() string {
	return c.config.BaseURL + c.config.AskPath
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// ProbeQuestion returns the question Ping sends.
func (c *Client) ProbeQuestion() string {
	return c.config.ProbeQuestion
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Ask sends a question with the conversation history and returns the answer.
// Any transport failure, non-2xx status, or body without an answer is an error.
func (c *Client) Ask(ctx context.Context, question string, history []Turn) (*AskResponse, error) {
	start := time.Now()
	c.logger.Debug("ask request",
		zap.String("endpoint", c.Endpoint()),
		zap.Int("history_len", len(history)))

	resp, err := c.post(ctx, AskRequest{Question: question, ConversationHistory: history}, true)
	if err != nil {
		c.logger.Debug("ask failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Stringer("type", TypeOf(err)),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("ask succeeded",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("answer_len", len(resp.Answer)))
	return resp, nil
}

// Ping checks that the ask endpoint answers a placeholder question.
// Only success or failure is consulted; the answer is discarded.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.post(ctx, AskRequest{Question: c.config.ProbeQuestion}, false)
	if err != nil {
		c.logger.Debug("probe failed", zap.Stringer("type", TypeOf(err)), zap.Error(err))
		return err
	}
	c.logger.Debug("probe succeeded", zap.String("endpoint", c.Endpoint()))
	return nil
}

// post performs one request/response exchange against the ask endpoint.
// When decode is false the body of a 2xx response is ignored.
func (c *Client) post(ctx context.Context, reqBody AskRequest, decode bool) (*AskResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "cannot reach backend", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := "backend responded with status " + resp.Status
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg = fmt.Sprintf("%s (%s)", msg, s)
		}
		return nil, &ClientError{Type: ErrTypeStatus, Status: resp.StatusCode, Message: msg}
	}

	if !decode {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil
	}

	var decoded askResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if decoded.Answer == nil {
		return nil, ErrMissingAnswer
	}

	return &AskResponse{Answer: *decoded.Answer}, nil
}
