package app

import (
	"log/slog"
	"os"

	"github.com/danukusuma/gatekeeper/internal/auth"
	"github.com/danukusuma/gatekeeper/internal/notify"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		Ctx:        a.ctx,
		CacheConn:  a.cacheConn,
		Goroutine:  a.goroutine,
		Router:     a.router,
		Messaging:  a.messaging,
		Config:     a.config,
		Instrument: a.ins,
		EventID:    a.uid,
		HMAC:       a.hmac,
		Clock:      a.clock,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.notify.enabled") {
		if err := notify.New(notify.Dependency{
			Ctx:        a.ctx,
			CacheConn:  a.cacheConn,
			Mail:       a.mail,
			Goroutine:  a.goroutine,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notify", "error", err)
			os.Exit(1)
		}
	}
}
