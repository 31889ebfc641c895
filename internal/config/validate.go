package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and defaults a config copy, then checks it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(out.Backend.BaseURL), "/")
	out.Capture.DefaultDescription = strings.TrimSpace(out.Capture.DefaultDescription)
	out.Deck.HistoryOrder = strings.ToLower(strings.TrimSpace(out.Deck.HistoryOrder))
	if out.Deck.HistoryOrder == "" {
		out.Deck.HistoryOrder = "append"
	}
	if out.Backend.UploadTimeoutSeconds == 0 {
		out.Backend.UploadTimeoutSeconds = 60
	}
	if out.Backend.RequestsPerSecond == 0 {
		out.Backend.RequestsPerSecond = 1.0
	}
	if out.Backend.Burst == 0 {
		out.Backend.Burst = 2
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Backend.BaseURL == "" {
		res.addErr("backend.base_url is required")
	} else if u, err := url.Parse(out.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("backend.base_url must be an absolute http(s) URL")
	}

	if out.Backend.UploadTimeoutSeconds < 0 {
		res.addErr("backend.upload_timeout_seconds must be >= 0")
	} else if out.Backend.UploadTimeoutSeconds > 0 && out.Backend.UploadTimeoutSeconds < 5 {
		res.addWarn("backend.upload_timeout_seconds is very low (%d); video uploads may not finish.", out.Backend.UploadTimeoutSeconds)
	}

	if out.Backend.RequestsPerSecond < 0 {
		res.addErr("backend.requests_per_second must be >= 0")
	}
	if out.Backend.Burst < 0 {
		res.addErr("backend.burst must be >= 0")
	}

	switch out.Deck.HistoryOrder {
	case "append", "prepend":
	default:
		res.addErr("deck.history_order must be \"append\" or \"prepend\"")
	}

	if !out.Capture.RequireFields && out.Capture.DefaultDescription == "" {
		res.addWarn("capture.require_fields is false with no default_description; quick captures will carry an empty description.")
	}

	return out, res
}
