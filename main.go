package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/envdock/edk/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.RootCmd.ExecuteContext(ctx)
	stop()

	var exitErr *cmd.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		os.Exit(exitErr.Code)
	default:
		fmt.Println(err)
		os.Exit(1)
	}
}
