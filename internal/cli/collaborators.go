package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// maxImageBytes caps an attached photo.
const maxImageBytes = 5 << 20

var errImageTooLarge = errors.New("image is too large")

// staticLocator reports the coordinates given on the command line.
type staticLocator struct {
	lat, lon string
}

var _ types.Geolocator = staticLocator{}

// Locate returns the configured position. No coordinates means no fix.
func (l staticLocator) Locate(ctx context.Context) (types.Location, error) {
	if ctx.Err() != nil {
		return types.Location{}, types.ErrLocationTimeout
	}
	if l.lat == "" && l.lon == "" {
		return types.Location{}, types.ErrLocationUnavailable
	}
	lat, err := strconv.ParseFloat(l.lat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return types.Location{}, fmt.Errorf("%w: latitude %q", types.ErrLocationUnavailable, l.lat)
	}
	lon, err := strconv.ParseFloat(l.lon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return types.Location{}, fmt.Errorf("%w: longitude %q", types.ErrLocationUnavailable, l.lon)
	}
	return types.Location{Latitude: l.lat, Longitude: l.lon}, nil
}

// fileImages stores photos as given; it does not resize.
type fileImages struct {
	maxBytes int64
}

var _ types.ImageProcessor = fileImages{}

// Process reads the whole image. maxDim is ignored.
func (f fileImages) Process(ctx context.Context, r io.Reader, maxDim int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", errImageTooLarge, f.maxBytes)
	}
	return data, nil
}

// location holds the --lat/--lon flags of a command.
type location struct {
	lat, lon string
}

// resolve asks the locator for a fix. A command without coordinates keeps
// them unset; a partial or malformed pair is an error.
func (l location) resolve(ctx context.Context) (lat, lon *string, err error) {
	loc, err := staticLocator{lat: l.lat, lon: l.lon}.Locate(ctx)
	switch {
	case err == nil:
		return &loc.Latitude, &loc.Longitude, nil
	case l.lat == "" && l.lon == "":
		return nil, nil, nil
	default:
		return nil, nil, err
	}
}

// loadImage reads the photo at path. An empty path means no photo.
func loadImage(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fileImages{maxBytes: maxImageBytes}.Process(ctx, f, 0)
}
