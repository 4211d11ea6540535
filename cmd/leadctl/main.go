package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"lead_backend/internal/cli"
	"lead_backend/internal/platform/logging"
)

func main() {
	logging.NewLogger(os.Stderr, "leadctl", os.Getenv("LOG_LEVEL"), "development")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
