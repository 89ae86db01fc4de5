package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"runtests/internal/cli/commands"
	"runtests/internal/domain"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.NewRootCommand(version)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	// exit errors were already reported with their stop diagnostic
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
