package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/linecard/ship/cmd/cli"
	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/internal/util"
)

func main() {
	util.SetLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	shutdown := tracing.InitOtel(ctx)
	code := cli.Invoke(ctx)

	shutdown()
	stop()
	os.Exit(code)
}
