package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

var rateYes bool

// stdinIsTerminal reports whether confirmation prompts can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rateCmd = &cobra.Command{
	Use:   "rate <docID> <stars>",
	Short: "Rate a series with 1 to 5 stars",
	Long: `Submits a star rating for one series and prints the updated average.
You are asked to confirm before the rating is sent; --yes skips the prompt.`,
	Args: cobra.ExactArgs(2),
	RunE: runRate,
}

func init() {
	rateCmd.Flags().BoolVarP(&rateYes, "yes", "y", false, "send without confirmation")
	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	if ratingService == nil {
		return errors.New("rating service not configured")
	}

	id := domain.DocID(strings.TrimSpace(args[0]))
	if id.IsZero() {
		return fmt.Errorf("docID is empty: %w", domain.ErrInvalidInput)
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil || !domain.ValidStars(stars) {
		return fmt.Errorf("stars must be a number from 1 to %d: %w", domain.MaxStars, domain.ErrInvalidRating)
	}

	if !rateYes {
		ok, err := confirmAction(cmd, fmt.Sprintf("Rate %s %d of %d stars?", id, stars, domain.MaxStars))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Rating not sent.")
			return nil
		}
	}

	avg, err := ratingService.Submit(cmd.Context(), id, stars)
	if err != nil {
		return fmt.Errorf("rating not saved: %w", err)
	}

	cmd.Printf("Rated %s %d of %d stars. Average is now %.1f.\n", id, stars, domain.MaxStars, avg)
	return nil
}

// confirmAction asks question on the terminal and reports a yes answer.
// Without a terminal it fails so that scripts must pass --yes.
func confirmAction(cmd *cobra.Command, question string) (bool, error) {
	if !stdinIsTerminal() {
		return false, errors.New("refusing to continue without confirmation; pass --yes")
	}

	cmd.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
