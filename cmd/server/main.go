// Command server runs the domain resolver: REST API, batch
// orchestration, background sweeps, and metrics exposition.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/leiscope/domain-resolver/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application failed: %v", err)
	}
}
