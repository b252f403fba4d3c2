package main

import (
	"context"
	"os"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	err := cli.Execute(context.Background())
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
