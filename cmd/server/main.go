package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/epl-compare-service/internal/config"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/server"
)

const serviceName = "epl-compare-service"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(os.Stdout, os.Stderr))
}

// run serves until SIGINT or SIGTERM and returns the process exit code.
func run(stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: server.Version,
		Output:  stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
	return 0
}
