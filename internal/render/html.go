package render

import (
	"bytes"
	"html/template"

	"workhub-engine/internal/domain"
)

// cardView is the pre-formatted projection one card template consumes. Free
// text stays plain strings so html/template escapes it on the way out.
type cardView struct {
	ID         string
	Lane       Lane
	Scope      domain.ScopeType
	ShortDesc  string
	BandText   string
	PriceText  string
	UpsellText string
	Notes      string
	PhotoURL   string
}

type deckView struct {
	Cards      []cardView
	CountLabel string
}

type overlayView struct {
	ID          string
	Scope       domain.ScopeType
	Description string
	BandText    string
	PriceText   string
	UpsellText  string
	Notes       string
	PhotoURL    string
}

const cardSrc = `<div class="job-card{{if .Lane}} {{.Lane}}{{end}}" data-card-id="{{.ID}}">
  <div class="job-head">
    <div>
      <div class="job-label">WorkHub job card</div>
      <div class="job-id">#{{.ID}}</div>
    </div>
    <div class="job-band">{{.BandText}}</div>
  </div>
  {{if .PhotoURL}}<img class="job-photo" src="/media?u={{.PhotoURL}}" alt="" loading="lazy">
  {{end}}<div class="job-meta">
    <span>{{.Scope}}</span>
    <span>{{.ShortDesc}}</span>
    <span>Quoted: {{.PriceText}}</span>
    <span>Upsell: {{.UpsellText}}</span>
  </div>
  <div class="job-note">{{.Notes}}</div>
  <div class="job-actions">
    <div class="tag-btn" data-action="open">View full ticket</div>
    <div class="tag-btn" data-action="copy">Copy summary</div>
  </div>
</div>
`

const deckSrc = `<div class="cards-strip">
{{range .Cards}}{{template "card" .}}{{end}}</div>
<div class="deck-count">{{.CountLabel}}</div>
`

const overlaySrc = `<div class="overlay-title">Job ticket · #{{.ID}}</div>
{{if .PhotoURL}}<img class="overlay-photo" src="/media?u={{.PhotoURL}}" alt="">
{{end}}<div class="overlay-note">Use this as your field ticket baseline. Adjust details before sending.</div>
<div class="overlay-note"><strong>Scope:</strong> {{.Scope}}</div>
<div class="overlay-note"><strong>Description:</strong> {{.Description}}</div>
<div class="overlay-note"><strong>Suggested band:</strong> {{.BandText}}</div>
<div class="overlay-note"><strong>Your quoted / anchor:</strong> {{.PriceText}}</div>
<div class="overlay-note"><strong>Upsell lane:</strong> {{.UpsellText}}</div>
<div class="overlay-note"><strong>Notes:</strong> {{.Notes}}</div>
`

var tmpl = func() *template.Template {
	t := template.Must(template.New("card").Parse(cardSrc))
	template.Must(t.New("deck").Parse(deckSrc))
	template.Must(t.New("overlay").Parse(overlaySrc))
	return t
}()

func viewFor(c domain.JobCard, lane Lane) cardView {
	return cardView{
		ID:         c.ID,
		Lane:       lane,
		Scope:      c.Scope,
		ShortDesc:  TruncateDescription(c.Description),
		BandText:   BandText(c),
		PriceText:  PriceText(c),
		UpsellText: UpsellText(c),
		Notes:      c.Notes,
		PhotoURL:   c.PhotoURL,
	}
}

// Card renders one compact card in its lane.
func Card(c domain.JobCard, lane Lane) (string, error) {
	var b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&b, "card", viewFor(c, lane)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Deck renders the whole strip plus the count badge from one snapshot.
func Deck(cards []domain.JobCard, active int) (string, error) {
	v := deckView{CountLabel: countLabel(len(cards))}
	for i, c := range cards {
		v.Cards = append(v.Cards, viewFor(c, LaneFor(i, active)))
	}
	var b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&b, "deck", v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Overlay renders the full-detail ticket. Nothing is truncated here.
func Overlay(c domain.JobCard) (string, error) {
	v := overlayView{
		ID:          c.ID,
		Scope:       c.Scope,
		Description: c.Description,
		BandText:    bandTextFull(c),
		PriceText:   priceTextFull(c),
		UpsellText:  upsellTextFull(c),
		Notes:       c.Notes,
		PhotoURL:    c.PhotoURL,
	}
	var b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&b, "overlay", v); err != nil {
		return "", err
	}
	return b.String(), nil
}
