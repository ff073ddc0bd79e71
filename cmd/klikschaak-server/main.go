// Command klikschaak-server runs the HTTP front-end over the Klikschaak
// engine: legal-move enumeration, search evaluation, and a websocket
// endpoint that streams iterative-deepening progress.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/klikschaak/engine/internal/analysiscache"
	"github.com/klikschaak/engine/internal/httpapi"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cacheDir := flag.String("cache-dir", "", "directory for the analysis cache database; empty disables caching")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var cache *analysiscache.Cache
	if *cacheDir != "" {
		cache, err = analysiscache.Open(*cacheDir, logger)
		if err != nil {
			logger.Fatal("failed to open analysis cache", zap.Error(err))
		}
		defer cache.Close()
	}

	var server *httpapi.Server
	if cache != nil {
		server = httpapi.NewServer(logger, cache)
	} else {
		server = httpapi.NewServer(logger, nil)
	}

	router := server.Router()

	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		if err := router.Run(*addr); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
}
