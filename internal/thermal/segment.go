package thermal

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironpeak/thermaview/internal/convert"
	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pixel"
)

// Default body-temperature band in degrees Celsius.
const (
	DefaultBandMinC = 28.0
	DefaultBandMaxC = 40.0
)

// fullScale is the top of the 14-bit pseudocolor range.
const fullScale = 16383

// Segmenter classifies pixels of a radiometric frame into body and
// background by their decoded temperature and renders the body region
// as a contrast-stretched pseudocolor overlay on black.
//
// A Segmenter keeps no state between frames; the stretch bounds are
// recomputed from each frame's own temperature distribution, which
// costs a second full scan but adapts the contrast per frame instead of
// using a fixed temperature-to-color scale.
type Segmenter struct {
	dec  Decoder
	minC float64
	maxC float64
}

// NewSegmenter returns a Segmenter using dec for per-point decoding and
// the default body-temperature band.
func NewSegmenter(dec Decoder) *Segmenter {
	return &Segmenter{dec: dec, minC: DefaultBandMinC, maxC: DefaultBandMaxC}
}

// SetBand replaces the Celsius classification band.
func (s *Segmenter) SetBand(minC, maxC float64) error {
	if minC >= maxC {
		return fmt.Errorf("invalid temperature band %.1f..%.1f", minC, maxC)
	}
	s.minC, s.maxC = minC, maxC
	return nil
}

// Band returns the current Celsius classification band.
func (s *Segmenter) Band() (minC, maxC float64) { return s.minC, s.maxC }

// bandStats accumulates pass-one observations over body pixels.
type bandStats struct {
	bodyPixels int
	minC, maxC float64
	minRaw     uint16
	maxRaw     uint16
}

// scan is the first pass: classify every pixel and record the Celsius
// and raw-sample ranges of the body class.
func (s *Segmenter) scan(frame []byte, res pixel.Resolution) bandStats {
	st := bandStats{minC: 999.0, maxC: -999.0, minRaw: 0xffff}
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			raw, err := s.dec.PointTemp(frame, res, pixel.Point{X: x, Y: y})
			if err != nil {
				continue
			}
			c := RawToCelsius(raw)
			if c < s.minC || c > s.maxC {
				continue
			}
			st.bodyPixels++
			if c < st.minC {
				st.minC = c
			}
			if c > st.maxC {
				st.maxC = c
			}
			sample := pixel.U16(frame, y*res.Width+x)
			if sample < st.minRaw {
				st.minRaw = sample
			}
			if sample > st.maxRaw {
				st.maxRaw = sample
			}
		}
	}
	return st
}

// mask is the second pass: body pixels are re-stretched from the
// observed sample range to the full pseudocolor range, everything else
// (including decode failures) becomes 0.
func (s *Segmenter) mask(frame []byte, res pixel.Resolution, st bandStats, dst []byte) {
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			i := y*res.Width + x
			raw, err := s.dec.PointTemp(frame, res, pixel.Point{X: x, Y: y})
			if err != nil {
				pixel.PutU16(dst, i, 0)
				continue
			}
			c := RawToCelsius(raw)
			if c < s.minC || c > s.maxC {
				pixel.PutU16(dst, i, 0)
				continue
			}
			if st.maxRaw > st.minRaw {
				sample := pixel.U16(frame, i)
				n := float64(sample-st.minRaw) / float64(st.maxRaw-st.minRaw)
				pixel.PutU16(dst, i, uint16(n*float64(fullScale)))
			} else {
				// Every body pixel carries the same sample; park them at
				// mid-scale instead of dividing by zero.
				pixel.PutU16(dst, i, fullScale/2)
			}
		}
	}
}

// Segment classifies frame against the configured band and returns a
// freshly allocated BGR888 buffer where body pixels carry the
// re-stretched pseudocolor and everything else is pure black.
//
// The per-call working buffers are owned by this call and released with
// it; Segment is safe to call concurrently on distinct frames.
func (s *Segmenter) Segment(frame []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid segmentation geometry %dx%d", width, height)
	}
	pix := width * height
	if len(frame) < pix*2 {
		return nil, fmt.Errorf("radiometric frame too short: have %d bytes, need %d", len(frame), pix*2)
	}
	res := pixel.Resolution{Width: width, Height: height}

	st := s.scan(frame, res)
	masked := make([]byte, pix*2)
	s.mask(frame, res, st, masked)

	fields := logrus.Fields{
		"band_min_c":   s.minC,
		"band_max_c":   s.maxC,
		"body_pixels":  st.bodyPixels,
		"total_pixels": pix,
		"body_ratio":   float64(st.bodyPixels) / float64(pix),
	}
	if st.bodyPixels > 0 {
		fields["body_temp_min_c"] = st.minC
		fields["body_temp_max_c"] = st.maxC
		fields["stretch_from"] = st.minRaw
		fields["stretch_to"] = st.maxRaw
	}
	logrus.WithFields(fields).Debug("segmentation scan complete")

	yuyv := make([]byte, pix*2)
	palette.MapY14(masked, pix, palette.ModeBGR, yuyv)
	rgb := make([]byte, pix*3)
	convert.YUV422ToRGB(yuyv, pix, rgb)
	dst := make([]byte, pix*3)
	convert.RGBToBGR(rgb, pix, dst)

	// The palette's zero entry is not guaranteed to be black; force the
	// background to (0,0,0) regardless of what the table produced.
	for i := 0; i < pix; i++ {
		if pixel.U16(masked, i) == 0 {
			dst[i*3+0] = 0
			dst[i*3+1] = 0
			dst[i*3+2] = 0
		}
	}
	return dst, nil
}
