package main

import (
	"context"

	"github.com/shipdocs/invoicegen/internal/bootstrap"
	"github.com/shipdocs/invoicegen/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Starting invoice generator")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		panic(err)
	}
}
