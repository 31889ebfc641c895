package httpapi

import (
	"errors"
	"net/http"

	"workhub-engine/internal/domain"
	"workhub-engine/internal/render"
	"workhub-engine/internal/submit"
)

type SubmitHandler struct {
	Submit *submit.Coordinator
}

// Run executes one submission attempt. The deck is only touched on success;
// every failure leaves the staged media in place and the submit action idle
// again.
func (h SubmitHandler) Run(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_form", "invalid form: "+err.Error())
		return
	}
	price := r.FormValue("price")
	description := r.FormValue("description")
	scope := domain.ParseScope(r.FormValue("scopeType"))

	c, err := h.Submit.Submit(r.Context(), price, description, scope)
	if err != nil {
		switch {
		case errors.Is(err, submit.ErrBusy):
			WriteError(w, r, http.StatusConflict, "busy", "A submission is already in flight.")
		case errors.Is(err, submit.ErrMissingMedia):
			WriteError(w, r, http.StatusUnprocessableEntity, "missing_media", "Start with a job photo or short clip first.")
		case errors.Is(err, submit.ErrMissingFields):
			WriteError(w, r, http.StatusUnprocessableEntity, "missing_fields", "Add what you charged and a quick description first.")
		default:
			// Transport or decode trouble; details are in the log already.
			WriteError(w, r, http.StatusBadGateway, "band_failed", "Something glitched on the smart band. Check backend / try again.")
		}
		return
	}

	// Per-submission detail summary, independent of the deck render.
	writeJSON(w, map[string]any{
		"card":    c,
		"band":    render.BandText(c),
		"upsell":  render.UpsellText(c),
		"notes":   c.Notes,
		"summary": render.Summary(c),
	})
}

func (h SubmitHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Submit.Status())
}
