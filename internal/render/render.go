// Package render projects deck state into the HTML fragments the local UI
// displays. It holds no state of its own; everything is derived from a deck
// snapshot, and all free text goes through html/template escaping.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"workhub-engine/internal/domain"
)

// Lane is a card's slot in the three-lane carousel window.
type Lane string

const (
	LaneActive Lane = "active"
	LaneLeft   Lane = "left"
	LaneRight  Lane = "right"
	LaneNone   Lane = ""
)

// LaneFor classifies a card relative to the active index.
func LaneFor(index, active int) Lane {
	switch {
	case index == active:
		return LaneActive
	case index == active-1:
		return LaneLeft
	case index == active+1:
		return LaneRight
	default:
		return LaneNone
	}
}

// BandText formats the suggested price band for the compact card.
func BandText(c domain.JobCard) string {
	if c.BandLow != nil && c.BandHigh != nil {
		return fmt.Sprintf("$%s – $%s", money(*c.BandLow), money(*c.BandHigh))
	}
	return "Band pending"
}

// bandTextFull is the overlay wording for a missing band.
func bandTextFull(c domain.JobCard) string {
	if c.BandLow != nil && c.BandHigh != nil {
		return fmt.Sprintf("$%s – $%s", money(*c.BandLow), money(*c.BandHigh))
	}
	return "Band not available"
}

// PriceText formats the operator's quoted price for the compact card.
func PriceText(c domain.JobCard) string {
	if c.Price != nil {
		return "$" + money(*c.Price)
	}
	return "—"
}

func priceTextFull(c domain.JobCard) string {
	if c.Price != nil {
		return "$" + money(*c.Price)
	}
	return "Not provided"
}

// UpsellText formats the upsell signal. Zero is a real reading and renders as
// "0%"; only a genuinely absent signal gets the placeholder.
func UpsellText(c domain.JobCard) string {
	if c.Upsell != nil {
		return money(*c.Upsell) + "%"
	}
	return "lane opens as we learn"
}

func upsellTextFull(c domain.JobCard) string {
	if c.Upsell != nil {
		return money(*c.Upsell) + "%"
	}
	return "As we tune this lane, we'll surface signals."
}

// TruncateDescription shortens free text for the compact card. The overlay
// always shows the full string.
func TruncateDescription(s string) string {
	t := strings.TrimSpace(s)
	r := []rune(t)
	if len(r) <= 40 {
		return t
	}
	return string(r[:37]) + "..."
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}

// Summary is the plain-text ticket used by the "copy summary" action.
func Summary(c domain.JobCard) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Job ticket #%s\n", c.ID)
	fmt.Fprintf(&b, "Scope: %s\n", c.Scope)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Suggested band: %s\n", bandTextFull(c))
	fmt.Fprintf(&b, "Quoted: %s\n", priceTextFull(c))
	fmt.Fprintf(&b, "Upsell lane: %s\n", upsellTextFull(c))
	fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	return b.String()
}
