package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"workhub-engine/internal/backend"
	"workhub-engine/internal/config"
	"workhub-engine/internal/deck"
	"workhub-engine/internal/events"
	"workhub-engine/internal/handoff"
	"workhub-engine/internal/httpapi"
	"workhub-engine/internal/staging"
	"workhub-engine/internal/submit"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("WORKHUB_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.OverlayEnv(&cfg)
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	hub := events.NewHub()
	dk := deck.New()
	unit := staging.NewUnit()
	channel := handoff.New(dataDir)

	limiter := backend.NewHostLimiter(cfg.Backend.RequestsPerSecond, cfg.Backend.Burst)
	client := backend.New(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.UploadTimeoutSeconds)*time.Second,
		limiter,
	)

	coord := &submit.Coordinator{
		Backend:            client,
		Staging:            unit,
		Deck:               dk,
		Hub:                hub,
		RequireFields:      cfg.Capture.RequireFields,
		DefaultDescription: cfg.Capture.DefaultDescription,
	}

	// Session bootstrap runs in the background: the listener must come up
	// immediately even when the backend hangs. deck_loaded and capture_staged
	// events tell the UI when the data lands.
	bootstrapSession(client, dk, deck.ParseOrder(cfg.Deck.HistoryOrder), channel, unit, hub)

	mux := httpapi.NewMux(httpapi.Deps{
		Deck:        dk,
		Staging:     unit,
		Submit:      coord,
		Hub:         hub,
		Handoff:     channel,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.Cors,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("hub listening on http://%s (data=%s shutdown_token=%s)", addr, dataDir, token)
	log.Fatal(srv.Serve(ln))
}
