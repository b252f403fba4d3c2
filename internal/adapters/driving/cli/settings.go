package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search backend, the session cache, the search form
options and logging.

Use subcommands to change single settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to the config file.
List values (form.genres, form.actors) are comma separated.
Run 'sercha-media settings keys' for the recognised keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the backend and session cache step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	for _, c := range []*cobra.Command{
		settingsCmd, settingsShowCmd, settingsSetCmd, settingsKeysCmd, settingsWizardCmd,
	} {
		c.Annotations = map[string]string{settingsOnly: "true"}
	}
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.URL)
	cmd.Printf("  Timeout: %ds\n", settings.Backend.TimeoutSeconds)
	cmd.Printf("  Rate limit: %g requests/s\n", settings.Backend.RatePerSecond)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Backend: %s\n", settings.Session.Backend.Description())
	switch settings.Session.Backend {
	case domain.SessionBackendSQLite:
		dir := settings.Session.Dir
		if dir == "" {
			dir = "(config directory)"
		}
		cmd.Printf("  Directory: %s\n", dir)
	case domain.SessionBackendRedis:
		if settings.Session.RedisURL != "" {
			cmd.Printf("  Redis URL: %s\n", redactURL(settings.Session.RedisURL))
		} else {
			cmd.Printf("  Redis URL: (not set)\n")
		}
	}
	cmd.Printf("  TTL: %d minutes\n", settings.Session.TTLMinutes)
	cmd.Println()

	cmd.Println("[Form]")
	cmd.Printf("  Genres: %s\n", listOrNone(settings.Form.Genres))
	cmd.Printf("  Actors: %s\n", listOrNone(settings.Form.Actors))
	cmd.Println()

	cmd.Println("[Log]")
	file := settings.Log.File
	if file == "" {
		file = "(stderr)"
	}
	cmd.Printf("  File: %s\n", file)
	cmd.Printf("  Format: %s\n", settings.Log.Format)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Sercha Media Settings Wizard")
	cmd.Println("============================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Search backend
	cmd.Println("Step 1: Search Backend")
	cmd.Println("----------------------")
	cmd.Printf("Enter backend URL [%s]: ", settings.Backend.URL)
	if input := readLine(reader); input != "" {
		settings.Backend.URL = input
	}
	cmd.Printf("Enter request timeout in seconds [%d]: ", settings.Backend.TimeoutSeconds)
	if n, err := strconv.Atoi(readLine(reader)); err == nil && n > 0 {
		settings.Backend.TimeoutSeconds = n
	}
	cmd.Println()

	// Step 2: Session cache
	cmd.Println("Step 2: Session Cache")
	cmd.Println("---------------------")
	backends := []domain.SessionBackend{
		domain.SessionBackendMemory,
		domain.SessionBackendSQLite,
		domain.SessionBackendRedis,
	}
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Session.Backend {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(backends), current)
	settings.Session.Backend = backends[idx-1]

	if settings.Session.Backend == domain.SessionBackendRedis {
		cmd.Print("Enter Redis URL (redis://[:password@]host:port/db): ")
		if input := readLine(reader); input != "" {
			settings.Session.RedisURL = input
		}
		if settings.Session.RedisURL == "" {
			return errors.New("a Redis URL is required for the redis session backend")
		}
	}
	cmd.Printf("Enter session TTL in minutes [%d]: ", settings.Session.TTLMinutes)
	if n, err := strconv.Atoi(readLine(reader)); err == nil && n > 0 {
		settings.Session.TTLMinutes = n
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Backend: %s\n", settings.Backend.URL)
	cmd.Printf("Session: %s\n", settings.Session.Backend.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	return u.Redacted()
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

