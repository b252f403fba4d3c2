package cli

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

func TestDetailCmd_Use(t *testing.T) {
	assert.Equal(t, "detail <docID|location>", detailCmd.Use)
}

func TestDetailCmd_BeforeSearch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("detail", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "0 is not in the current results. Run a search first.")
}

func TestDetailCmd_ShowsPrimaryAndRelated(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "--genre", "Crime", "--genre", "Thriller", "--genre-match", "all")
	require.NoError(t, err)

	out, err := execute("detail", "detail?docID=0")

	require.NoError(t, err)
	assert.Contains(t, out, "Breaking Bad (2008–2013)")
	assert.Contains(t, out, "IMDB:        9.5 from 1,552,311 votes")
	assert.Contains(t, out, "Actors:      Bryan Cranston, Aaron Paul, Anna Gunn, Betsy Brandt")
	assert.Contains(t, out, "Related (2):")
	assert.Contains(t, out, "[3] The Wire · Dominic West · 322,081 votes")
	assert.Contains(t, out, "[9] Fargo · Billy Bob Thornton · 379,512 votes")
}

func TestDetailCmd_OnlyResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "--title", "sherlock")
	require.NoError(t, err)

	out, err := execute("detail", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "No related items.")
}

func TestDetailCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "--title", "the")
	require.NoError(t, err)

	out, err := execute("detail", "7", "--json")
	require.NoError(t, err)

	var detail domain.Detail
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, domain.DocID("7"), detail.Primary.DocID)
	require.Len(t, detail.Related, 2)
	assert.ElementsMatch(t, []string{"The Wire", "Band of Brothers"},
		[]string{detail.Related[0].Title, detail.Related[1].Title})
}

func TestDetailCmd_BadLocation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("detail", "detail?page=2")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
