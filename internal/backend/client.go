// Package backend is the HTTP client for the remote pricing service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"workhub-engine/internal/card"
	"workhub-engine/internal/domain"
	"workhub-engine/internal/staging"
)

// TransportError covers network failures and non-2xx responses. Body is a
// best-effort capture for diagnostics only.
type TransportError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("backend %s: status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	base    string
	hc      *http.Client
	limiter *HostLimiter
}

func New(baseURL string, timeout time.Duration, limiter *HostLimiter) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Upload sends one capture plus its context as a single multipart request and
// returns the raw job record the pricing service built from it.
func (c *Client) Upload(ctx context.Context, media staging.StagedMedia, price, description string, scope domain.ScopeType) (card.RawJob, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, media.Filename))
	hdr.Set("Content-Type", media.MIME)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return card.RawJob{}, fmt.Errorf("upload form: %w", err)
	}
	if _, err := part.Write(media.Data); err != nil {
		return card.RawJob{}, fmt.Errorf("upload form: %w", err)
	}

	if price != "" {
		_ = mw.WriteField("price", price)
	}
	_ = mw.WriteField("description", description)
	_ = mw.WriteField("scopeType", string(scope))
	if err := mw.Close(); err != nil {
		return card.RawJob{}, fmt.Errorf("upload form: %w", err)
	}

	url := c.base + "/api/jobs/upload"
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", "WorkHub/1.0 (+local)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return card.RawJob{}, &TransportError{Op: "upload", Err: err}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return card.RawJob{}, &TransportError{Op: "upload", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return card.RawJob{}, &TransportError{Op: "upload", Status: res.StatusCode, Body: safeRead(res.Body)}
	}

	var raw card.RawJob
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return card.RawJob{}, &TransportError{Op: "upload", Err: fmt.Errorf("decode: %w", err)}
	}
	return raw, nil
}

// List fetches the operator's previously logged jobs, in server order.
func (c *Client) List(ctx context.Context) ([]card.RawJob, error) {
	url := c.base + "/api/jobs/list"
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("User-Agent", "WorkHub/1.0 (+local)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, &TransportError{Op: "list", Err: err}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &TransportError{Op: "list", Status: res.StatusCode, Body: safeRead(res.Body)}
	}

	var raws []card.RawJob
	if err := json.NewDecoder(res.Body).Decode(&raws); err != nil {
		return nil, &TransportError{Op: "list", Err: fmt.Errorf("decode: %w", err)}
	}
	return raws, nil
}

// safeRead never fails; it exists purely to enrich error logs.
func safeRead(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2048))
	return string(b)
}
