package domain

import "time"

// ScopeType classifies how a job was captured.
type ScopeType string

const (
	ScopeSnapshot   ScopeType = "snapshot"   // fits in one frame
	ScopeWalkaround ScopeType = "walkaround" // multi-angle / video walk-around
)

// ParseScope maps free-form input onto the closed scope enum.
// Anything unrecognized falls back to snapshot.
func ParseScope(s string) ScopeType {
	if s == string(ScopeWalkaround) {
		return ScopeWalkaround
	}
	return ScopeSnapshot
}

// JobCard is the canonical card shown in the session deck, post-normalization.
// Optional numeric fields stay nil when the backend omitted them; zero is a
// legitimate price/band/upsell value and must never stand in for "unknown".
type JobCard struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	BandLow     *float64  `json:"bandLow"`
	BandHigh    *float64  `json:"bandHigh"`
	Price       *float64  `json:"price"`
	Upsell      *float64  `json:"upsell"`
	Notes       string    `json:"notes"`
	Scope       ScopeType `json:"scopeType"`
	Description string    `json:"description"`
}
