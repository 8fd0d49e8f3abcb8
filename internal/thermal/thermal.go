// Package thermal decodes per-pixel radiometric temperatures and
// implements the temperature-band body segmentation overlay.
//
// Raw temperatures are in units of 1/64 kelvin, the native resolution
// of the radiometric stream. A decode failure for a pixel is never
// fatal: the segmenter folds it into the background class.
package thermal

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironpeak/thermaview/internal/pixel"
)

// ErrDecode reports that a per-point temperature could not be decoded.
var ErrDecode = errors.New("temperature decode failed")

// RawToCelsius converts a raw 1/64 K radiometric sample to degrees
// Celsius.
func RawToCelsius(raw uint16) float64 {
	return float64(raw)/64.0 - 273.15
}

// CelsiusToRaw converts degrees Celsius back to the raw 1/64 K scale,
// rounded to the nearest count.
func CelsiusToRaw(c float64) uint16 {
	return uint16(math.Round((c + 273.15) * 64.0))
}

// Decoder resolves the raw temperature of a single point of a
// radiometric frame.
type Decoder interface {
	// PointTemp returns the raw 1/64 K temperature at p. Errors wrap
	// ErrDecode and mean only that this point could not be resolved.
	PointTemp(frame []byte, res pixel.Resolution, p pixel.Point) (uint16, error)
}

// RadiometricDecoder reads temperatures directly from a frame whose
// samples already are 1/64 K counts, which is how calibrated cores
// deliver the secondary stream.
type RadiometricDecoder struct{}

// PointTemp implements Decoder.
func (RadiometricDecoder) PointTemp(frame []byte, res pixel.Resolution, p pixel.Point) (uint16, error) {
	if p.X < 0 || p.Y < 0 || p.X >= res.Width || p.Y >= res.Height {
		return 0, fmt.Errorf("%w: point (%d,%d) outside %dx%d", ErrDecode, p.X, p.Y, res.Width, res.Height)
	}
	i := p.Y*res.Width + p.X
	if (i+1)*2 > len(frame) {
		return 0, fmt.Errorf("%w: frame too short for point (%d,%d)", ErrDecode, p.X, p.Y)
	}
	return pixel.U16(frame, i), nil
}

// Range scans a radiometric frame and returns its minimum and maximum
// raw samples. Used to label the display legend with the frame's actual
// temperature span.
func Range(frame []byte, pixels int) (minRaw, maxRaw uint16) {
	minRaw = math.MaxUint16
	for i := 0; i < pixels; i++ {
		v := pixel.U16(frame, i)
		if v < minRaw {
			minRaw = v
		}
		if v > maxRaw {
			maxRaw = v
		}
	}
	return minRaw, maxRaw
}
