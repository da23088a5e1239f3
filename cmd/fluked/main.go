package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/flukeworks/fluke/config"
	"github.com/flukeworks/fluke/internal/adminapi"
	"github.com/flukeworks/fluke/internal/app"
	"github.com/flukeworks/fluke/internal/webserver"
)

var (
	conffile = flag.String("c", "/etc/fluke.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showver  = flag.Bool("v", false, "show version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showver {
		fmt.Println("fluked", version)
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter(application)

	go func() {
		if err := webserver.Listen(); err != nil {
			zap.S().Errorf("web server stopped: %s", err.Error())
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	zap.S().Info("shutting down")
	_ = webserver.Shutdown()
}
