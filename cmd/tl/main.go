package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-timelog/internal/cli"
	"task-timelog/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.OpenAPI)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
