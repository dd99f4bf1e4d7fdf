package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := newCLI()
	c.setVersion(version)
	err := c.execute(ctx)
	stop()

	os.Exit(exitCode(err, os.Stderr))
}
