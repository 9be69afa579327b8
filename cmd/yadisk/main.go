package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/natserract/yadisk/cmd/yadisk/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewYadiskCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
