// Package server initializes and runs the investkeeper API server.
// It opens the document store, builds the services, handles graceful
// shutdown and starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/investkeeper/internal/logging"
	"github.com/dmitrijs2005/investkeeper/internal/server/config"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/investkeeper/internal/server/rest"
	"github.com/dmitrijs2005/investkeeper/internal/server/services"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	userService       *services.UserService
	investmentService *services.InvestmentService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := OpenStore(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	rm := repomanager.NewDocumentRepositoryManager(st)

	us, err := services.NewUserService(rm, c)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	is := services.NewInvestmentService(rm)

	return &App{config: c, logger: logger, userService: us, investmentService: is}, nil
}

// OpenStore builds the document store for the configured backend.
func OpenStore(ctx context.Context, c *config.Config, logger logging.Logger) (*store.Store, error) {
	var backend store.Backend

	switch c.StoreBackend {
	case config.BackendFile:
		backend = store.NewFileBackend(c.StorePath)
	case config.BackendS3:
		b, err := store.NewS3Backend(ctx, store.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
			Key:          c.S3ObjectKey,
		})
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	return store.New(backend,
		store.WithLogger(logger),
		store.WithSerializedWrites(c.SerializeWrites),
	), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.investmentService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"backend", app.config.StoreBackend,
		"serialize_writes", app.config.SerializeWrites,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
