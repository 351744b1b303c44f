package main

import (
	"fmt"
	"log/slog"
	"os"

	"asapcut/config"
	"asapcut/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	config.ConnectDB()
	config.ConnectRedis()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.MaxMultipartMemory = 30 << 20

	// Uploaded logos, report files and contribution spreadsheets.
	r.Static("/static", "./static")

	routes.SetupRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
