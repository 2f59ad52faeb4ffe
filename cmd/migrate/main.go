package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [up|down|version]")
	}
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.DatabaseURL(), action); err != nil {
		slog.Error("Migration failed", "action", action, "error", err)
		os.Exit(1)
	}
	slog.Info("Migration finished", "action", action)
}
