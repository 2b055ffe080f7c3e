package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"terramythica-server/internal/defs"
	"terramythica-server/internal/engine"
	"terramythica-server/internal/network"
	"terramythica-server/internal/server"
	"terramythica-server/internal/version"
	"terramythica-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	flag.StringVar(&cfg.DefsPath, "defs", cfg.DefsPath, "Path to balance YAML (empty for built-in defaults)")
	flag.StringVar(&cfg.AreaID, "area", cfg.AreaID, "Area to simulate")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	flag.Int64Var(&cfg.TickMillis, "tick", cfg.TickMillis, "Simulation step in milliseconds")
	flag.Parse()

	if port := os.Getenv("TM_PORT"); port != "" {
		cfg.Port = port
	}

	logger.Log.Info("Starting Terramythica Server...")
	logger.Log.Info(version.String())

	// 2. Библиотека определений
	var lib *defs.Library
	var err error
	if cfg.DefsPath != "" {
		lib, err = defs.Load(cfg.DefsPath)
		if err != nil {
			logger.Log.Fatal("Failed to load definitions: ", err)
		}
	} else {
		lib = defs.Default()
	}

	// 3. Инициализация ядра
	session, err := engine.NewSession(lib, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to create session: ", err)
	}

	hub := network.NewBroadcaster()
	loop := engine.NewLoop(session, hub)
	go loop.Run()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Запуск сервера
	srv := server.New(loop, hub, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	loop.Stop()
	logger.Log.Info("Done.")
}
