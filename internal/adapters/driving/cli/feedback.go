package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

var (
	feedbackLike    []string
	feedbackDislike []string
	feedbackJSON    bool
	feedbackYes     bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Refine the last search with like/dislike feedback",
	Long: `Sends the series you liked and disliked in the last search of this session
to the backend, which re-ranks the results. A series given both --like and
--dislike is ignored. You are asked to confirm before the batch is sent;
--yes skips the prompt.`,
	Example: `  sercha-media --session $ID feedback --like 0 --like 4 --dislike 7 --yes`,
	Args:    cobra.NoArgs,
	RunE:    runFeedback,
}

func init() {
	feedbackCmd.Flags().StringSliceVar(&feedbackLike, "like", nil, "docID of a relevant result (repeatable)")
	feedbackCmd.Flags().StringSliceVar(&feedbackDislike, "dislike", nil, "docID of a non-relevant result (repeatable)")
	feedbackCmd.Flags().BoolVar(&feedbackJSON, "json", false, "output results as JSON")
	feedbackCmd.Flags().BoolVarP(&feedbackYes, "yes", "y", false, "send without confirmation")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	marks := feedbackMarks(feedbackLike, feedbackDislike)
	if len(marks) == 0 {
		return fmt.Errorf("pass at least one --like or --dislike: %w", domain.ErrInvalidInput)
	}

	if !feedbackYes {
		ok, err := confirmAction(cmd, fmt.Sprintf("Send feedback for %d marked results?", len(marks)))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Feedback not sent.")
			return nil
		}
	}

	batch, conflicts, err := feedbackService.BuildBatch(cmd.Context(), marks)
	for _, id := range conflicts {
		cmd.Printf("Ignoring %s: marked both like and dislike\n", id)
	}
	if err != nil {
		return fmt.Errorf("feedback not sent: %w", err)
	}

	results, err := feedbackService.Submit(cmd.Context(), batch)
	if err != nil {
		return fmt.Errorf("feedback failed: %w", err)
	}

	if feedbackJSON {
		return outputJSON(cmd, results)
	}
	outputResultTable(cmd, results)
	return nil
}

// feedbackMarks merges the flag values into one mark per docID in first-seen order.
func feedbackMarks(liked, disliked []string) []domain.FeedbackMark {
	index := make(map[domain.DocID]int)
	var marks []domain.FeedbackMark
	mark := func(raw string, like bool) {
		id := domain.DocID(strings.TrimSpace(raw))
		if id.IsZero() {
			return
		}
		i, ok := index[id]
		if !ok {
			i = len(marks)
			index[id] = i
			marks = append(marks, domain.FeedbackMark{DocID: id})
		}
		if like {
			marks[i].Liked = true
		} else {
			marks[i].Disliked = true
		}
	}
	for _, id := range liked {
		mark(id, true)
	}
	for _, id := range disliked {
		mark(id, false)
	}
	return marks
}
