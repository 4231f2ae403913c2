package main

import (
	"context"
	"net/http"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/config"
	"github.com/msubham193/buckinn-console/pkg/server"
	"github.com/msubham193/buckinn-console/pkg/session"
	"github.com/msubham193/buckinn-console/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

type options struct {
	ConfigFile string `short:"c" long:"config" description:"path to a yaml config file"`
}

func main() {
	ctx := context.Background()
	log := logger.New()

	opts := options{}
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Err(err).Fatal("flag error")
	}

	log.Info("starting buckinn console", logger.Data{"version": version.Version})

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	client := catalog.New(cfg.API.BaseURL, cfg.API.Timeout)

	creds := session.NewCredentialsFile(cfg.State.Dir)
	sessions := session.NewManager(client, creds, log)
	client.SetTokenFunc(sessions.AccessToken)

	srv, err := server.New(cfg, client, sessions)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr, "api": cfg.API.BaseURL})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")
}
