package types

import (
	"context"
	"errors"
	"io"
)

// ImageProcessor turns a raw image into a reoriented, downscaled blob no
// larger than maxDim on its longest side.
type ImageProcessor interface {
	Process(ctx context.Context, r io.Reader, maxDim int) ([]byte, error)
}

// Location is a latitude/longitude pair in decimal-degree string form, as
// stored on traps, catches and gun logs.
type Location struct {
	Latitude  string
	Longitude string
}

// Geolocator acquires the current position.
type Geolocator interface {
	Locate(ctx context.Context) (Location, error)
}

// Geolocation failure reasons.
var (
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
	ErrLocationTimeout          = errors.New("location request timed out")
	ErrLocationUnsupported      = errors.New("location not supported")
)
