package certificate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Payload is everything the renderer needs to produce a certificate.
type Payload struct {
	StudentName    string    `json:"studentName"`
	CourseTitle    string    `json:"courseTitle"`
	MentorName     string    `json:"mentorName"`
	CompletionDate time.Time `json:"completionDate"`
}

// Renderer produces a certificate artifact from a payload. Implementations
// must fail before writing any bytes to w, or not at all: once the artifact
// starts streaming there is no way to replace it with an error response.
type Renderer interface {
	Render(ctx context.Context, payload Payload, w io.Writer) error
}

// HTTPRenderer delegates rendering to an external service and streams the
// returned artifact through.
type HTTPRenderer struct {
	url    string
	client *http.Client
}

// NewHTTPRenderer builds a renderer against the given endpoint.
func NewHTTPRenderer(url string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Render posts the payload and copies the response body into w. Errors from
// the remote service surface before the first byte is written.
func (r *HTTPRenderer) Render(ctx context.Context, payload Payload, w io.Writer) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: renderer returned %d", ErrRenderFailed, resp.StatusCode)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}
