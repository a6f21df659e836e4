package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"school20/app/config"
)

// RenderRequest is the payload for one report-card render call.
type RenderRequest struct {
	StudentID      string `json:"student_id"`
	AcademicYearID string `json:"academic_year_id"`
	TermID         string `json:"term_id"`
	GeneratedBy    string `json:"generated_by"`
}

// ReportRenderer invokes the external rendering function for one student.
// The function is opaque and potentially slow; nothing beyond
// success/failure is relied upon.
type ReportRenderer interface {
	Render(ctx context.Context, req RenderRequest) error
}

// HTTPRenderer calls the configured serverless rendering function over
// HTTP.
type HTTPRenderer struct {
	client   *http.Client
	baseURL  string
	function string
}

func NewHTTPRenderer(cfg config.RendererConfig) *HTTPRenderer {
	return &HTTPRenderer{
		client:   &http.Client{Timeout: 2 * time.Minute},
		baseURL:  cfg.BaseURL,
		function: cfg.FunctionName,
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, req RenderRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode render request: %w", err)
	}

	url := r.baseURL + "/" + r.function
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build render request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("render call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("render function returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
