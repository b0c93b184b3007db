package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmotkit/asset-mgmt-accounting/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.DefaultAppFactory).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
