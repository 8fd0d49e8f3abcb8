// Package pixel defines the frame formats, geometry descriptors and raw
// buffer conventions shared by the processing pipeline.
//
// # Buffer Layout
//
// All raw buffers are row-major with no padding. Two-byte samples (Y14,
// Y16 and radiometric counts) are stored little-endian; use U16 and
// PutU16 to access them. Packed YUV422 is YUYV order (Y0 U Y1 V per
// pixel pair), YUV444 and RGB888/BGR888 are three bytes per pixel.
package pixel

import (
	"encoding/binary"
	"fmt"
)

// InputFormat identifies the encoding of a frame handed to the pipeline.
type InputFormat int

const (
	InputY14 InputFormat = iota
	InputY16
	InputYUV422
)

// String returns the flag-friendly name of the format.
func (f InputFormat) String() string {
	switch f {
	case InputY14:
		return "y14"
	case InputY16:
		return "y16"
	case InputYUV422:
		return "yuv422"
	}
	return fmt.Sprintf("InputFormat(%d)", int(f))
}

// ParseInputFormat maps a flag value to an InputFormat.
func ParseInputFormat(s string) (InputFormat, error) {
	switch s {
	case "y14":
		return InputY14, nil
	case "y16":
		return InputY16, nil
	case "yuv422":
		return InputYUV422, nil
	}
	return 0, fmt.Errorf("unknown input format %q (want y14, y16 or yuv422)", s)
}

// BytesPerPixel returns the storage size of one pixel in this format.
// All supported input formats are two bytes per pixel.
func (f InputFormat) BytesPerPixel() int { return 2 }

// OutputFormat identifies the encoding the pipeline is asked to produce.
type OutputFormat int

const (
	OutputY14 OutputFormat = iota
	OutputYUV444
	OutputYUV422
	OutputRGB888
	OutputBGR888
)

// String returns the flag-friendly name of the format.
func (f OutputFormat) String() string {
	switch f {
	case OutputY14:
		return "y14"
	case OutputYUV444:
		return "yuv444"
	case OutputYUV422:
		return "yuv422"
	case OutputRGB888:
		return "rgb"
	case OutputBGR888:
		return "bgr"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "y14":
		return OutputY14, nil
	case "yuv444":
		return OutputYUV444, nil
	case "yuv422":
		return OutputYUV422, nil
	case "rgb", "rgb888":
		return OutputRGB888, nil
	case "bgr", "bgr888":
		return OutputBGR888, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want y14, yuv444, yuv422, rgb or bgr)", s)
}

// BytesPerPixel returns the storage size of one pixel in this format.
func (f OutputFormat) BytesPerPixel() int {
	switch f {
	case OutputY14, OutputYUV422:
		return 2
	default:
		return 3
	}
}

// RotateSide selects the rotation applied after format conversion.
type RotateSide int

const (
	RotateNone RotateSide = iota
	RotateLeft90
	RotateRight90
	Rotate180
)

// String returns the flag-friendly name of the rotation.
func (r RotateSide) String() string {
	switch r {
	case RotateNone:
		return "none"
	case RotateLeft90:
		return "left90"
	case RotateRight90:
		return "right90"
	case Rotate180:
		return "180"
	}
	return fmt.Sprintf("RotateSide(%d)", int(r))
}

// ParseRotateSide maps a flag value to a RotateSide.
func ParseRotateSide(s string) (RotateSide, error) {
	switch s {
	case "none", "":
		return RotateNone, nil
	case "left90", "left":
		return RotateLeft90, nil
	case "right90", "right":
		return RotateRight90, nil
	case "180":
		return Rotate180, nil
	}
	return 0, fmt.Errorf("unknown rotation %q (want none, left90, right90 or 180)", s)
}

// Swaps reports whether the rotation exchanges frame width and height.
func (r RotateSide) Swaps() bool {
	return r == RotateLeft90 || r == RotateRight90
}

// MirrorFlip selects the mirror/flip treatment applied after format
// conversion and before rotation.
type MirrorFlip int

const (
	MirrorFlipNone MirrorFlip = iota
	MirrorOnly
	FlipOnly
	MirrorAndFlip
)

// Resolution is a frame width/height pair in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Pixels returns the pixel count of the resolution.
func (r Resolution) Pixels() int { return r.Width * r.Height }

// Point is an (x, y) pixel coordinate, 0-based with origin at top-left.
type Point struct {
	X int
	Y int
}

// FrameInfo describes one stream's frames and carries the byte size of
// the most recently produced buffer.
//
// ByteSize is an output of every processing step: after a successful
// conversion it equals pixel count times the output format's bytes per
// pixel, and it is forced to zero on a declared-unsupported conversion.
type FrameInfo struct {
	Width        int
	Height       int
	InputFormat  InputFormat
	OutputFormat OutputFormat
	Enhance      bool
	PseudoColor  bool
	Rotate       RotateSide
	MirrorFlip   MirrorFlip
	ByteSize     int
}

// PixelCount returns the number of pixels per frame.
func (f *FrameInfo) PixelCount() int { return f.Width * f.Height }

// Resolution returns the frame geometry as a Resolution value.
func (f *FrameInfo) Resolution() Resolution {
	return Resolution{Width: f.Width, Height: f.Height}
}

// U16 reads the i-th little-endian 16-bit sample from a raw buffer.
func U16(b []byte, i int) uint16 {
	return binary.LittleEndian.Uint16(b[i*2:])
}

// PutU16 writes the i-th little-endian 16-bit sample of a raw buffer.
func PutU16(b []byte, i int, v uint16) {
	binary.LittleEndian.PutUint16(b[i*2:], v)
}
