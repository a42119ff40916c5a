package util

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrInsufficientPoints is returned when fewer than two points are submitted.
	ErrInsufficientPoints = errors.New("at least 2 points are required")
	// ErrInvalidCoordinates is returned when a point is not a finite [lon, lat] pair.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ValidatePoints checks that points is a drawable sequence: two or more
// entries, each a [longitude, latitude] pair of finite numbers within
// range. It has no side effects.
func ValidatePoints(points [][]float64) error {
	if len(points) < 2 {
		return ErrInsufficientPoints
	}

	for i, p := range points {
		if len(p) != 2 {
			return errors.Wrapf(ErrInvalidCoordinates, "point %d has %d values", i, len(p))
		}
		lon, lat := p[0], p[1]
		if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
			return errors.Wrapf(ErrInvalidCoordinates, "point %d is not finite", i)
		}
		if lon < -180 || lon > 180 {
			return errors.Wrapf(ErrInvalidCoordinates, "point %d longitude %f out of range", i, lon)
		}
		if lat < -90 || lat > 90 {
			return errors.Wrapf(ErrInvalidCoordinates, "point %d latitude %f out of range", i, lat)
		}
	}

	return nil
}
