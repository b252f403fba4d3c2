package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewSearch, "search"},
		{ViewDetail, "detail"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := map[ViewType]bool{}
	for _, v := range []ViewType{ViewSearch, ViewDetail, ViewHelp} {
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestAverageLoaded_CarriesGeneration(t *testing.T) {
	msg := AverageLoaded{Generation: 3, DocID: "7", Avg: 4.5}

	assert.Equal(t, uint64(3), msg.Generation)
	assert.Equal(t, domain.DocID("7"), msg.DocID)
	assert.InDelta(t, 4.5, msg.Avg, 1e-9)
	assert.NoError(t, msg.Err)
}

func TestFeedbackSubmitted_WithError(t *testing.T) {
	err := errors.New("backend down")
	msg := FeedbackSubmitted{Err: err}

	assert.ErrorIs(t, msg.Err, err)
	assert.Empty(t, msg.Set.Items)
	assert.Nil(t, msg.Conflicts)
}
