package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cafeteca/cafeteca-server/config"
	"github.com/cafeteca/cafeteca-server/internal/adminapi"
	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/internal/publicapi"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("c", "cafeteca.yml", "configuration file")
	showVer    = flag.Bool("v", false, "print version and exit")
	initDb     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

var (
	// set by the build pipeline
	version   = "dev"
	buildDate = "unknown"
)

// @title Cafeteca back-office API
// @version 1.0
// @description Administration and public API for the Cafeteca site.
// @BasePath /
func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("cafeteca %s (%s)\n", version, buildDate)
		return
	}

	cfg := config.LoadConfig(*configFile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter(application)
	publicapi.InitRouter(application)

	var g errgroup.Group
	g.Go(webserver.Listen)
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		zap.L().Info("shutting down", zap.String("signal", s.String()))
		return webserver.Shutdown()
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
	}
}
