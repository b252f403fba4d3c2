package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMalformedFormState", ErrMalformedFormState},
		{"ErrTransportFailure", ErrTransportFailure},
		{"ErrConflictingFeedback", ErrConflictingFeedback},
		{"ErrInvalidRating", ErrInvalidRating},
		{"ErrInvalidTransition", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrMalformedFormState, ErrTransportFailure,
		ErrConflictingFeedback, ErrInvalidRating, ErrInvalidTransition,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("search: %w", ErrTransportFailure)
	assert.True(t, errors.Is(err, ErrTransportFailure))
	assert.Equal(t, "search: transport failure", err.Error())
}
