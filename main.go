// Package main provides the entrypoint for gh-email-finder.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/isometry/gh-email-finder/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.New().ExecuteContext(ctx)
	code := cmd.ExitCode(ctx, os.Stdout, err)
	stop()
	os.Exit(code)
}
