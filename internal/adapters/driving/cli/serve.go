package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/memory"
	"github.com/custodia-labs/sercha-media/internal/adapters/driving/devserver"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

var (
	serveAddr      string
	serveCatalogue string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development search backend",
	Long: `Serves the search backend API from an in-memory catalogue so the CLI and
TUI can be used without the real search service.

Without --catalogue a small built-in sample is served. A catalogue file is a
JSON array of series records.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipBootstrap: "true"},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", devserver.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&serveCatalogue, "catalogue", "", "JSON catalogue file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	items, err := serveItems()
	if err != nil {
		return err
	}
	backend := memory.NewBackend(items)
	logger.Info("Serving %d catalogue items", backend.Len())

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return devserver.NewServer(backend).ListenAndServe(ctx, serveAddr)
}

func serveItems() ([]domain.ResultItem, error) {
	if serveCatalogue == "" {
		return memory.SampleCatalogue(), nil
	}
	items, err := memory.LoadCatalogueFile(serveCatalogue)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	return items, nil
}
