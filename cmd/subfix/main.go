package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subfix/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, services.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch services.KindOf(err) {
	case services.KindInput, services.KindParse:
		return 2
	case services.KindConfiguration:
		return 3
	case services.KindCanceled:
		return 130
	default:
		return 1
	}
}
