package cli

import (
	"bytes"
	"strings"

	backendmemory "github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/memory"
	storagememory "github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-media/internal/core/services"
)

// setupTestServices wires the commands to the sample catalogue and
// in-memory stores. The returned func restores the package state.
func setupTestServices() func() {
	resetFlags()
	wireServices(backendmemory.NewBackend(backendmemory.SampleCatalogue()), storagememory.NewSessionStore())
	settingsService = services.NewSettingsService(storagememory.NewConfigStore())
	sessionID = "test-session"

	return func() {
		searchService = nil
		ratingService = nil
		feedbackService = nil
		detailService = nil
		settingsService = nil
		sessionCache = nil
		sessionID = ""
		resetFlags()
	}
}

func resetFlags() {
	searchTitle = ""
	searchOverview = ""
	searchGenres = nil
	searchGenreMatch = "any"
	searchActors = nil
	searchActorMatch = "any"
	searchBoostRating = true
	searchBoostVotes = false
	searchJSON = false
	rateYes = false
	feedbackLike = nil
	feedbackDislike = nil
	feedbackJSON = false
	feedbackYes = false
	detailJSON = false
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
