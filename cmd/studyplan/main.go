package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/javiermolinar/studyplan/internal/config"
	"github.com/javiermolinar/studyplan/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg)
	stop()
	os.Exit(code)
}

// run executes the CLI; command errors are already printed by the app.
func run(ctx context.Context, cfg *config.Config) int {
	app := ui.NewApp(cfg)
	defer func() { _ = app.Close() }()

	if err := app.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
