package httpapi

import (
	"sync/atomic"

	"workhub-engine/internal/config"
	"workhub-engine/internal/deck"
	"workhub-engine/internal/events"
	"workhub-engine/internal/handoff"
	"workhub-engine/internal/staging"
	"workhub-engine/internal/submit"
)

type Deps struct {
	Deck    *deck.Deck
	Staging *staging.Unit
	Submit  *submit.Coordinator
	Hub     *events.Hub
	Handoff *handoff.Channel

	// Reloadable snapshot, stores config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
