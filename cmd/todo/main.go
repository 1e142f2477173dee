package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"todo-cli/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !cli.Printed(err) {
			fmt.Fprintln(os.Stderr, "todo:", err)
		}
		stop()
		os.Exit(1)
	}
}
