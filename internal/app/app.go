package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/goroutine"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/mail"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/pkg/router"
	"github.com/danukusuma/gatekeeper/internal/pkg/uid"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
