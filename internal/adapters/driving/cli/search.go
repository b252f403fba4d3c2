package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/services"
)

var (
	searchTitle       string
	searchOverview    string
	searchGenres      []string
	searchGenreMatch  string
	searchActors      []string
	searchActorMatch  string
	searchBoostRating bool
	searchBoostVotes  bool
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the series catalogue",
	Long: `Builds a query from the given filters and sends it to the search backend.
Title and overview are free text. Genres and actors are facet filters that
match any or all of the given values. Boosts favour highly rated and widely
voted series.`,
	Example: `  sercha-media search --title "breaking" --genre Crime --genre Drama --genre-match all
  sercha-media search --actor "Bryan Cranston" --boost-votes --json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "match the series title")
	searchCmd.Flags().StringVar(&searchOverview, "overview", "", "match the overview text")
	searchCmd.Flags().StringSliceVar(&searchGenres, "genre", nil, "genre filter (repeatable)")
	searchCmd.Flags().StringVar(&searchGenreMatch, "genre-match", "any", "genre filter matches any|all")
	searchCmd.Flags().StringSliceVar(&searchActors, "actor", nil, "actor filter (repeatable)")
	searchCmd.Flags().StringVar(&searchActorMatch, "actor-match", "any", "actor filter matches any|all")
	searchCmd.Flags().BoolVar(&searchBoostRating, "boost-rating", true, "boost by IMDB rating")
	searchCmd.Flags().BoolVar(&searchBoostVotes, "boost-votes", false, "boost by number of votes")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	form, err := searchForm()
	if err != nil {
		return err
	}
	query, err := services.BuildQuery(form)
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	results, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	outputResultTable(cmd, results)
	return nil
}

// searchForm fills the search form the way a user would from the flags.
func searchForm() (domain.FormState, error) {
	genreOp, err := matchOperator(searchGenreMatch)
	if err != nil {
		return domain.FormState{}, fmt.Errorf("--genre-match: %w", err)
	}
	actorOp, err := matchOperator(searchActorMatch)
	if err != nil {
		return domain.FormState{}, fmt.Errorf("--actor-match: %w", err)
	}
	operators := map[string]domain.FacetOperator{
		domain.FieldGenre:  genreOp,
		domain.FieldActors: actorOp,
	}

	form := domain.DefaultForm(cleanValues(searchGenres), cleanValues(searchActors))
	for i := range form.Controls {
		c := &form.Controls[i]
		switch c.Kind {
		case domain.ControlText:
			switch c.Name {
			case domain.FieldTitle:
				c.Value = strings.TrimSpace(searchTitle)
			case domain.FieldOverview:
				c.Value = strings.TrimSpace(searchOverview)
			}
		case domain.ControlMultiSelect:
			for j := range c.Options {
				c.Options[j].Selected = true
			}
		case domain.ControlRadio:
			for j := range c.Options {
				c.Options[j].Selected = c.Options[j].Value == string(operators[c.Facet])
			}
		case domain.ControlCheckbox:
			switch c.Name {
			case domain.FieldRating:
				c.Checked = searchBoostRating
			case domain.FieldVotes:
				c.Checked = searchBoostVotes
			}
		}
	}
	return form, nil
}

func matchOperator(s string) (domain.FacetOperator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "or", "":
		return domain.OperatorOr, nil
	case "all", "and":
		return domain.OperatorAnd, nil
	}
	return "", fmt.Errorf("%q is not any or all: %w", s, domain.ErrInvalidInput)
}

func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultTable(cmd *cobra.Command, results domain.ResultSet) {
	if results.Len() == 0 {
		cmd.Println("No results found.")
		printSession(cmd)
		return
	}

	cmd.Printf("Results (%d):\n", results.Len())
	cmd.Println()
	for i := range results.Items {
		item := &results.Items[i]
		// Format: [docID] Title Runtime
		cmd.Printf("  [%s] %s %s\n", item.DocID, item.Title, item.Runtime)
		cmd.Printf("      %s\n", resultMeta(item))
		if lead := item.LeadActor(); lead != "" {
			cmd.Printf("      Starring %s\n", lead)
		}
		cmd.Println()
	}
	printSession(cmd)
}

func resultMeta(item *domain.ResultItem) string {
	parts := make([]string, 0, 3)
	if len(item.Genres) > 0 {
		parts = append(parts, strings.Join(item.Genres, ", "))
	}
	if item.Rating > 0 {
		parts = append(parts, fmt.Sprintf("IMDB %.1f (%s votes)", item.Rating, humanize.Comma(int64(item.Votes))))
	}
	if item.Certificate != "" {
		parts = append(parts, item.Certificate)
	}
	return strings.Join(parts, " · ")
}

func printSession(cmd *cobra.Command) {
	if sessionID != "" {
		cmd.Printf("Session: %s\n", sessionID)
	}
}
