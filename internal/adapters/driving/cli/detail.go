package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

var detailJSON bool

var detailCmd = &cobra.Command{
	Use:   "detail <docID|location>",
	Short: "Show one series and the other results of the last search",
	Long: `Shows the full record of one series from the last search of this session,
followed by the remaining results. Accepts a docID or a detail location
such as "detail?docID=4".`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func init() {
	detailCmd.Flags().BoolVar(&detailJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	if detailService == nil {
		return errors.New("detail service not configured")
	}

	id, err := domain.ParseLocation(args[0])
	if err != nil {
		return err
	}

	detail, err := detailService.Detail(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("%s is not in the current results. Run a search first.\n", id)
		printSession(cmd)
		return nil
	}
	if err != nil {
		return fmt.Errorf("detail failed: %w", err)
	}

	if detailJSON {
		return outputJSON(cmd, detail)
	}
	outputDetail(cmd, detail)
	return nil
}

func outputDetail(cmd *cobra.Command, d domain.Detail) {
	p := d.Primary
	cmd.Printf("%s %s\n", p.Title, p.Runtime)
	cmd.Println()
	if p.AvgStars > 0 {
		cmd.Printf("  Stars:       %.1f / %d\n", p.AvgStars, domain.StarCount)
	}
	cmd.Printf("  IMDB:        %.1f from %s votes\n", p.Rating, humanize.Comma(int64(p.Votes)))
	if p.Certificate != "" {
		cmd.Printf("  Certificate: %s\n", p.Certificate)
	}
	if len(p.Genres) > 0 {
		cmd.Printf("  Genre:       %s\n", strings.Join(p.Genres, ", "))
	}
	if len(p.Actors) > 0 {
		cmd.Printf("  Actors:      %s\n", strings.Join(p.Actors, ", "))
	}
	if p.Poster != "" {
		cmd.Printf("  Poster:      %s\n", p.Poster)
	}
	if p.Overview != "" {
		cmd.Println()
		cmd.Printf("  %s\n", p.Overview)
	}

	cmd.Println()
	if len(d.Related) == 0 {
		cmd.Println("No related items.")
		return
	}
	cmd.Printf("Related (%d):\n", len(d.Related))
	for i := range d.Related {
		r := &d.Related[i]
		line := fmt.Sprintf("  [%s] %s", r.DocID, r.Title)
		if lead := r.LeadActor(); lead != "" {
			line += " · " + lead
		}
		line += fmt.Sprintf(" · %s votes", humanize.Comma(int64(r.Votes)))
		cmd.Println(line)
	}
}
