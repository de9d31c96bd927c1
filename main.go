package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"EmberROM/commands"
	"EmberROM/internal/game"
)

func main() {
	configPath := flag.String("config", "data/server.yaml", "Path to the server configuration file")
	addr := flag.String("addr", "", "TCP address to listen on (overrides the config file)")
	dataDir := flag.String("data", "", "Data directory (overrides the config file)")
	metricsAddr := flag.String("metrics", "", "Prometheus metrics address (overrides the config file)")
	adminAccount := flag.String("admin", "admin", "Account granted administrator privileges")
	blocklist := flag.String("blocklist", "", "Optional newline-separated name blocklist file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	store, err := game.OpenStore(filepath.Join(cfg.DataDir, cfg.WorldName+".db"))
	if err != nil {
		logger.Fatal("store open failed", zap.Error(err))
	}
	defer store.Close()

	world, err := game.LoadWorld(cfg, store, logger)
	if err != nil {
		logger.Fatal("world load failed", zap.Error(err))
	}

	screen := game.NewNameScreen()
	if *blocklist != "" {
		if err := screen.LoadBlocklist(*blocklist); err != nil {
			logger.Fatal("blocklist load failed", zap.Error(err))
		}
	}

	settings := game.NewSettings(cfg)
	router := game.NewRouter()
	realm := &game.Realm{
		World:     world,
		Router:    router,
		Store:     store,
		Settings:  settings,
		AdminName: strings.TrimSpace(*adminAccount),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go router.Run()
	defer router.Close()
	go game.NewGameLoop(world).Run(ctx)
	go game.NewMaintenance(world, store, settings).Run(ctx)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := game.ServeMetrics(cfg.MetricsAddr); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	server := game.NewServer(realm, screen, commands.Dispatch)
	if err := server.ListenAndServe(cfg.Listen); err != nil {
		logger.Fatal("listener failed", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
