package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/investkeeper/internal/admin"
	"github.com/dmitrijs2005/investkeeper/internal/logging"
	"github.com/dmitrijs2005/investkeeper/internal/server"
	"github.com/dmitrijs2005/investkeeper/internal/server/config"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/investkeeper/internal/server/services"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	st, err := server.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	us, err := services.NewUserService(repomanager.NewDocumentRepositoryManager(st), cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := admin.NewApp(st, us, os.Stdin, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
