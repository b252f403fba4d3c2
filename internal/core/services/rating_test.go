package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
)

func TestRatingService_Average(t *testing.T) {
	svc := NewRatingService(&mockBackend{averages: map[domain.DocID]float64{"1": 3.75}})
	ctx := context.Background()

	avg, err := svc.Average(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, 3.75, avg, 1e-9)

	avg, err = svc.Average(ctx, "unrated")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestRatingService_Average_Errors(t *testing.T) {
	backend := &mockBackend{averageErr: domain.ErrTransportFailure}
	svc := NewRatingService(backend)

	_, err := svc.Average(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrTransportFailure)

	_, err = svc.Average(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRatingService_Submit_ReturnsServerAverage(t *testing.T) {
	backend := &mockBackend{receipt: domain.RatingReceipt{Status: domain.RatingStatusOK, AvgStars: 3.2}}
	svc := NewRatingService(backend)

	avg, err := svc.Submit(context.Background(), "1", 5)

	require.NoError(t, err)
	assert.InDelta(t, 3.2, avg, 1e-9)
	assert.Equal(t, 5, backend.lastStars)
}

func TestRatingService_Submit_ValidatesBeforeSending(t *testing.T) {
	tests := []struct {
		name  string
		id    domain.DocID
		stars int
		want  error
	}{
		{"zero stars", "1", 0, domain.ErrInvalidRating},
		{"six stars", "1", 6, domain.ErrInvalidRating},
		{"negative", "1", -1, domain.ErrInvalidRating},
		{"empty id", "", 3, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{}
			svc := NewRatingService(backend)

			_, err := svc.Submit(context.Background(), tt.id, tt.stars)

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, backend.calls)
		})
	}
}

func TestRatingService_Submit_NonOKStatus(t *testing.T) {
	svc := NewRatingService(&mockBackend{receipt: domain.RatingReceipt{Status: "error", AvgStars: 1}})

	_, err := svc.Submit(context.Background(), "1", 4)

	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestRatingService_Submit_TransportError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewRatingService(&mockBackend{rateErr: boom})

	_, err := svc.Submit(context.Background(), "1", 4)

	assert.ErrorIs(t, err, boom)
}
