package domain

import "math"

// StarCount is the number of star positions a rating is drawn with.
const StarCount = 5

// StarFill is how one star position is drawn.
type StarFill int

// Available star fills.
const (
	StarEmpty StarFill = iota
	StarHalf
	StarFull
)

// String returns the string representation.
func (f StarFill) String() string {
	switch f {
	case StarFull:
		return "full"
	case StarHalf:
		return "half"
	default:
		return "empty"
	}
}

// StarFills returns the fill of each star position for an average rating.
// Position i is half-filled when i+0.5 equals the average rounded to the
// nearest half, full when i is below the average rounded to the nearest
// integer, and empty otherwise. Rounding is half-up.
func StarFills(avg float64) [StarCount]StarFill {
	var fills [StarCount]StarFill
	half := roundHalfUp(avg*2) / 2
	whole := roundHalfUp(avg)
	for i := range fills {
		switch {
		case float64(i)+0.5 == half:
			fills[i] = StarHalf
		case float64(i) < whole:
			fills[i] = StarFull
		default:
			fills[i] = StarEmpty
		}
	}
	return fills
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
