package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/biotinker/curvview"
	"github.com/biotinker/curvview/internal/settings"

	"go.viam.com/rdk/logging"
)

func main() {
	settingsPath := flag.String("settings", "", "path to job settings JSON file")
	flag.Parse()

	logger := logging.NewDebugLogger("curvview")

	if *settingsPath == "" {
		logger.Fatal("-settings flag is required")
	}
	s, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	j, err := curvview.NewJob(s, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := curvview.Run(ctx, j); err != nil {
		logger.Fatal(err)
	}
}
