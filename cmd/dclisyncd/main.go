package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kpango/glg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikechambers/dcli-sub000/bungie"
	"github.com/mikechambers/dcli-sub000/store"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config override file")
	flag.Parse()

	config := loadConfig(*configPath)
	ConfigureLogging(config.LogLevel, config.LogFilePath)
	defer CloseLogger()

	if config.BungieAPIKey == "" {
		glg.Fatal("BUNGIE_API_KEY is required")
	}

	s, err := store.Open(config.StoreDir)
	if err != nil {
		glg.Fatalf("failed opening store: %s", err.Error())
	}
	defer s.Close()

	manifest, err := store.OpenManifest(config.ManifestPath)
	if err != nil {
		glg.Fatalf("failed opening manifest: %s", err.Error())
	}

	api, err := bungie.NewAPIInterface(config.BungieAPIKey)
	if err != nil {
		glg.Fatalf("failed building bungie api client: %s", err.Error())
	}

	registry := prometheus.NewRegistry()
	metrics := store.NewMetrics(registry)

	engine := store.NewEngine(s, api, config.FixCorruptData, metrics)
	query := store.NewQuery(s, manifest)

	srv := &server{api: api, engine: engine, query: query}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runDaemon(ctx, engine)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", srv.healthHandler)
	router.POST("/sync", srv.syncNowHandler)
	router.POST("/subscribe", srv.subscribeHandler)
	router.GET("/activity/last", srv.lastActivityHandler)
	router.GET("/activities", srv.activitiesSinceHandler)
	router.GET("/activities/summary", srv.summaryHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	glg.Infof("dclisyncd listening on :%s", config.Port)
	if err := router.Run(":" + config.Port); err != nil {
		glg.Errorf("http server exited: %s", err.Error())
	}
}
