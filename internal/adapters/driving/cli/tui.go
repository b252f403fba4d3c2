package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for sercha-media.

Fill in the search form, browse the results, rate series with stars and
mark results liked or disliked to refine the ranking.

Controls:
  Tab/Shift+Tab - Move between form fields
  Ctrl+A        - Show boost options
  Enter         - Search / Open detail
  ↑/k, ↓/j      - Navigate results
  s             - Rate the selected result
  l, d          - Like / dislike the selected result
  r             - Refresh results with feedback
  Esc           - Back / Cancel
  ?             - Toggle help
  q             - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI crashed")
		}
	}()

	ports := tui.NewPorts(searchService, ratingService, feedbackService, detailService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app.WithContext(ctx)

	// Log lines written to stderr would tear the alternate screen.
	if !logToFile {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	// The session ends with the program.
	if sessionCache != nil {
		defer func() {
			if err := sessionCache.Reset(context.Background()); err != nil {
				logger.Warn("Clearing session: %v", err)
			}
		}()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
