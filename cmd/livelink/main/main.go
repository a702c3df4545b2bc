package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/livelink/cmd/livelink"
	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/style"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := livelink.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	log.Error().
		Err(err).
		Str("code", string(errors.GetErrorCode(err))).
		Fields(errors.GetErrorDetails(err)).
		Msg("Command failed")

	if !livelink.IsReported(err) {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}
	os.Exit(errors.ExitCode(err))
}
