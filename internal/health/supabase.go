// Package health probes the external services the API depends on.
package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"portfolio/internal/config"
)

const maxBodyBytes = 64 << 10

// Result is the JSON body of a health probe.
type Result struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Supabase checks the hosted auth service's health endpoint.
type Supabase struct {
	url    string
	key    string
	client *http.Client
}

// NewSupabase creates a probe. A nil client gets a 10 second timeout.
func NewSupabase(cfg config.Supabase, client *http.Client) *Supabase {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Supabase{
		url:    cfg.URL + "/auth/v1/health",
		key:    cfg.AnonKey,
		client: client,
	}
}

// Check calls the upstream once. ok is false on transport errors and on
// any non-2xx answer, whose status and body are reported back.
func (s *Supabase) Check(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Result{Error: err.Error()}
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return Result{Status: resp.StatusCode, Error: fmt.Sprintf("read body: %v", err)}
		}
		return Result{Status: resp.StatusCode, Body: string(body)}
	}
	return Result{OK: true}
}
