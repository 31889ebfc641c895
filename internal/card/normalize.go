package card

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"workhub-engine/internal/domain"
)

// RawJob is a backend job record as it actually arrives. The backend has gone
// through a few payload shapes, so every field is optional and numerics may be
// numbers, strings, or missing entirely. Alias resolution order (most specific
// key wins, one table for all call sites):
//
//	band low:    aiLow  -> bandLow
//	band high:   aiHigh -> bandHigh
//	identity:    id -> _id -> generated short id
//	created:     createdAt -> time of normalization
//	notes:       notes -> summary -> placeholder
//	description: description -> placeholder
//
// Every numeric field, upsell included, accepts JSON numbers and numeric
// strings; the backend has shipped both. Anything else is absent, never zero.
type RawJob struct {
	ID          string `json:"id"`
	AltID       string `json:"_id"`
	CreatedAt   string `json:"createdAt"`
	PreviewURL  string `json:"previewUrl"`
	AILow       any    `json:"aiLow"`
	AIHigh      any    `json:"aiHigh"`
	BandLow     any    `json:"bandLow"`
	BandHigh    any    `json:"bandHigh"`
	Price       any    `json:"price"`
	Upsell      any    `json:"upsellPotential"`
	Notes       string `json:"notes"`
	Summary     string `json:"summary"`
	ScopeType   string `json:"scopeType"`
	Description string `json:"description"`
}

const (
	placeholderNotes       = "Band generated. Tune this lane as you go."
	placeholderDescription = "Job capture"
)

// Normalize maps a raw backend record onto the canonical card. Pure except for
// the created-time and generated-id fallbacks.
func Normalize(raw RawJob) domain.JobCard {
	id := raw.ID
	if id == "" {
		id = raw.AltID
	}
	if id == "" {
		id = ShortID()
	}

	created := time.Now().UTC()
	if raw.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.CreatedAt); err == nil {
			created = t
		}
	}

	bandLow := NumberOrNil(raw.AILow)
	if bandLow == nil {
		bandLow = NumberOrNil(raw.BandLow)
	}
	bandHigh := NumberOrNil(raw.AIHigh)
	if bandHigh == nil {
		bandHigh = NumberOrNil(raw.BandHigh)
	}

	notes := raw.Notes
	if notes == "" {
		notes = raw.Summary
	}
	if notes == "" {
		notes = placeholderNotes
	}

	desc := raw.Description
	if desc == "" {
		desc = placeholderDescription
	}

	return domain.JobCard{
		ID:          id,
		Created:     created,
		PhotoURL:    raw.PreviewURL,
		BandLow:     bandLow,
		BandHigh:    bandHigh,
		Price:       NumberOrNil(raw.Price),
		Upsell:      NumberOrNil(raw.Upsell),
		Notes:       notes,
		Scope:       domain.ParseScope(raw.ScopeType),
		Description: desc,
	}
}

// NumberOrNil coerces a loosely typed JSON value to a float pointer. Anything
// that is not genuinely numeric (nil, empty string, garbage text) comes back
// nil so renderers can tell "unknown" apart from zero.
func NumberOrNil(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
