package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Capture
	ch := CaptureHandler{Staging: d.Staging, Hub: d.Hub, Handoff: d.Handoff}
	mux.HandleFunc("/capture/select", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ch.Select,
	}))
	mux.HandleFunc("/capture/clear", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ch.Clear,
	}))
	mux.HandleFunc("/capture/preview/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.PreviewByPath, // expects /capture/preview/{handle}
	}))
	mux.HandleFunc("/handoff", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ch.PublishHandoff,
	}))

	// Submission
	sh := SubmitHandler{Submit: d.Submit}
	mux.HandleFunc("/submit", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/submit/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))

	// Deck
	dh := DeckHandler{Deck: d.Deck, Hub: d.Hub}
	mux.HandleFunc("/deck", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.State,
	}))
	mux.HandleFunc("/deck/render", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Render,
	}))
	mux.HandleFunc("/deck/active", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.SetActive,
	}))
	mux.HandleFunc("/cards/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.CardByPath, // /cards/{id} and /cards/{id}/summary
	}))

	// Card photo proxy (use cfgVal, NOT a snapshot cfg)
	mh := MediaHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/media", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Proxy,
	}))

	// Config
	cfh := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfh.Get,
		http.MethodPut: cfh.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfh.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	return mux
}
