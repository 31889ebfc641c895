package httpapi

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"workhub-engine/internal/config"
)

// MediaHandler proxies card photo URLs for the local UI, which can't fetch
// the pricing backend's hosts cross-origin from a webview.
type MediaHandler struct {
	CfgVal *atomic.Value // config.Config
}

func (h MediaHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("u") // already decoded by net/http
	if u == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_url", "missing u")
		return
	}

	// Drop any fragment; it is never sent upstream and some CDNs stuff a
	// second URL in there.
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = strings.TrimSpace(u[:i])
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_url", "bad url")
		return
	}

	// Only the configured pricing backend's host is fetchable.
	cfg := h.CfgVal.Load().(config.Config)
	base, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || !strings.EqualFold(parsed.Host, base.Host) {
		WriteError(w, r, http.StatusForbidden, "host_not_allowed", "host not allowed")
		return
	}

	req, _ := http.NewRequestWithContext(r.Context(), http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "WorkHub/1.0 (+local)")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,video/*,*/*;q=0.8")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[media] fetch failed url=%s err=%v", u, err)
		WriteError(w, r, http.StatusBadGateway, "fetch_failed", "fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		log.Printf("[media] upstream status=%s url=%s body=%q", resp.Status, u, string(b))
		WriteError(w, r, http.StatusBadGateway, "upstream_error", "upstream status: "+resp.Status)
		return
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	_, _ = io.Copy(w, resp.Body)
}
