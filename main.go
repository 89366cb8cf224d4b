package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"portfoliodesk/internal/config"
)

func main() {
	cfg := config.Load()

	userID := os.Getenv("PORTFOLIO_USER_ID")
	if userID == "" {
		logrus.Fatal("PORTFOLIO_USER_ID is required")
	}

	app := NewApp(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Startup(ctx, userID); err != nil {
		logrus.WithError(err).Fatal("startup failed")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	app.Shutdown()
}
