package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/adapters/driving/devserver"
)

func TestServeCmd_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, devserver.DefaultAddr, flag.DefValue)
	assert.NotNil(t, serveCmd.Flags().Lookup("catalogue"))
}

func TestServeCmd_SkipsBootstrap(t *testing.T) {
	assert.Equal(t, "true", serveCmd.Annotations[skipBootstrap])
}

func TestServeItems_Sample(t *testing.T) {
	serveCatalogue = ""

	items, err := serveItems()

	require.NoError(t, err)
	assert.Len(t, items, 12)
}

func TestServeItems_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	data := `[{"docID": 1, "Series_Title": "Dark", "Genre": ["Crime"], "IMDB_Rating": 8.7}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	serveCatalogue = path
	defer func() { serveCatalogue = "" }()

	items, err := serveItems()

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dark", items[0].Title)
}

func TestServeItems_MissingFile(t *testing.T) {
	serveCatalogue = filepath.Join(t.TempDir(), "missing.json")
	defer func() { serveCatalogue = "" }()

	_, err := serveItems()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalogue")
}
