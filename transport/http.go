package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"sigrpc/jsonrpc"
)

// HTTPClient is a RequestClient that POSTs JSON-RPC envelopes to the target
// address.
//
// Timeouts and retries are configured here because the calling core treats
// both as this layer's responsibility: a deadline surfaces as a transport
// error with the timeout flag set, and retries (if enabled) apply only to
// transport errors — binding, protocol, and application errors are never
// retried.
type HTTPClient struct {
	hc         *http.Client
	timeout    time.Duration // per-call budget; 0 means rely on the caller's ctx
	maxRetries int
	baseDelay  time.Duration
	seq        atomic.Uint64 // request id counter, echoed back and verified
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithTimeout sets a per-call deadline applied on top of the caller's context.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRetry enables retries of failed calls: up to maxRetries additional
// attempts with exponential backoff starting at baseDelay. Only transport
// errors are retried.
func WithRetry(maxRetries int, baseDelay time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

func NewHTTPClient(opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{hc: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MakeRequest performs one remote call and returns the wire-ready result.
func (c *HTTPClient) MakeRequest(ctx context.Context, addr, method string, params any) (any, error) {
	id := c.seq.Add(1)
	req, err := jsonrpc.NewRequest(method, params, id)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	result, callErr := c.do(ctx, addr, body, id)
	for attempt := 0; attempt < c.maxRetries && retryable(callErr); attempt++ {
		// Exponential backoff, abandoned early if the caller gives up.
		select {
		case <-time.After(c.baseDelay * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return nil, &Error{Op: "post", Addr: addr, Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded), Err: ctx.Err()}
		}
		result, callErr = c.do(ctx, addr, body, id)
	}
	return result, callErr
}

func (c *HTTPClient) do(ctx context.Context, addr string, body []byte, id uint64) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Op: "post", Addr: addr, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &Error{Op: "post", Addr: addr, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{Op: "post", Addr: addr, Status: resp.StatusCode, Err: fmt.Errorf("non-success status")}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: "read", Addr: addr, Timeout: isTimeout(err), Err: err}
	}
	return jsonrpc.DecodeResponse(raw, id)
}

// retryable reports whether err is a transport error worth another attempt.
// Protocol and application errors are deterministic; retrying them would
// only repeat the failure.
func retryable(err error) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Timeout || te.Status >= 500 || te.Status == 0
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
