package pipeline

import (
	"fmt"

	"github.com/ironpeak/thermaview/internal/convert"
	"github.com/ironpeak/thermaview/internal/geometry"
	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pixel"
)

// Process runs the full per-frame chain over a raw frame and returns
// the produced raster together with its final width and height, which
// are swapped relative to the input for quarter rotations.
//
// The returned slice aliases the second scratch arena and is valid only
// until the next Process call. A Y16 frame is normalized to Y14 in
// place, mutating the caller's buffer. The pseudocolor flag applies to
// Y14-origin frames only and is ignored for YUV422 input.
//
// On any error info.ByteSize is zero and nothing was written to the
// output arena for the caller to consume. Unsupported format pairs
// report ErrUnsupportedConversion, a recoverable per-frame failure.
func (c *Context) Process(frame []byte, info *pixel.FrameInfo) ([]byte, int, int, error) {
	info.ByteSize = 0
	if c.closed() {
		return nil, 0, 0, ErrClosed
	}
	pix := info.PixelCount()
	if pix == 0 || len(frame) == 0 {
		return nil, 0, 0, ErrEmptyFrame
	}
	if info.Width != c.width || info.Height != c.height {
		return nil, 0, 0, fmt.Errorf("frame geometry %dx%d does not match session %dx%d",
			info.Width, info.Height, c.width, c.height)
	}
	if need := pix * info.InputFormat.BytesPerPixel(); len(frame) < need {
		return nil, 0, 0, fmt.Errorf("input frame too short: have %d bytes, need %d", len(frame), need)
	}

	var produced pixel.OutputFormat
	switch info.InputFormat {
	case pixel.InputY14, pixel.InputY16:
		if info.InputFormat == pixel.InputY16 {
			convert.Y16ToY14(frame, frame, pix)
		}
		Enhance(frame, info.Enhance, pix, c.scratchA)
		if info.PseudoColor {
			produced = c.colorize(info)
		} else {
			produced = c.convertDirect(info)
		}
	case pixel.InputYUV422:
		var err error
		produced, err = c.convertFromYUV422(frame, info)
		if err != nil {
			return nil, 0, 0, err
		}
	default:
		return nil, 0, 0, fmt.Errorf("%w: input format %v", ErrUnsupportedConversion, info.InputFormat)
	}

	c.applyMirrorFlip(info, produced)
	c.applyRotate(info, produced)

	outW, outH := info.Width, info.Height
	if info.Rotate.Swaps() {
		outW, outH = outH, outW
	}
	return c.scratchB[:info.ByteSize], outW, outH, nil
}

// colorize runs the pseudocolor chain over the enhanced Y14 samples in
// the first arena: always a palette lookup pass first, then conversion
// toward the requested output. Returns the format actually produced.
func (c *Context) colorize(info *pixel.FrameInfo) pixel.OutputFormat {
	pix := info.PixelCount()
	switch info.OutputFormat {
	case pixel.OutputYUV422:
		palette.MapY14(c.scratchA, pix, palette.ModeRGB, c.scratchB)
		info.ByteSize = pix * 2
		return pixel.OutputYUV422
	case pixel.OutputRGB888:
		palette.MapY14(c.scratchA, pix, palette.ModeRGB, c.scratchB)
		convert.YUV422ToRGB(c.scratchB, pix, c.scratchA)
		copy(c.scratchB[:pix*3], c.scratchA[:pix*3])
		info.ByteSize = pix * 3
		return pixel.OutputRGB888
	default:
		// Any other requested format renders in BGR, the display-native
		// order. BGR is always derived as RGB followed by a channel
		// swap so both outputs share identical luma/chroma handling.
		palette.MapY14(c.scratchA, pix, palette.ModeBGR, c.scratchB)
		convert.YUV422ToRGB(c.scratchB, pix, c.scratchA)
		convert.RGBToBGR(c.scratchA, pix, c.scratchB)
		info.ByteSize = pix * 3
		return pixel.OutputBGR888
	}
}

// convertDirect is the non-pseudocolor path from enhanced Y14 samples
// to the requested output format.
func (c *Context) convertDirect(info *pixel.FrameInfo) pixel.OutputFormat {
	pix := info.PixelCount()
	switch info.OutputFormat {
	case pixel.OutputY14:
		copy(c.scratchB[:pix*2], c.scratchA[:pix*2])
		info.ByteSize = pix * 2
	case pixel.OutputYUV444:
		convert.Y14ToYUV444(c.scratchA, pix, c.scratchB)
		info.ByteSize = pix * 3
	case pixel.OutputYUV422:
		// The intermediate YUV444 stage needs a full three bytes per
		// pixel, so it stages through the second arena before the
		// downsample writes the packed result back.
		convert.Y14ToYUV444(c.scratchA, pix, c.scratchB)
		copy(c.scratchA[:pix*3], c.scratchB[:pix*3])
		convert.YUV444ToYUV422(c.scratchA, pix, c.scratchB)
		info.ByteSize = pix * 2
	case pixel.OutputRGB888:
		convert.Y14ToRGB(c.scratchA, pix, c.scratchB)
		info.ByteSize = pix * 3
	default:
		convert.Y14ToRGB(c.scratchA, pix, c.scratchB)
		convert.RGBToBGR(c.scratchB, pix, c.scratchB)
		info.ByteSize = pix * 3
		return pixel.OutputBGR888
	}
	return info.OutputFormat
}

// convertFromYUV422 handles already-packed YUV input.
func (c *Context) convertFromYUV422(frame []byte, info *pixel.FrameInfo) (pixel.OutputFormat, error) {
	pix := info.PixelCount()
	switch info.OutputFormat {
	case pixel.OutputY14, pixel.OutputYUV444:
		// Luminance-only precision cannot be recovered from
		// chroma-subsampled data; refuse rather than invert lossily.
		return 0, fmt.Errorf("%w: yuv422 to %v", ErrUnsupportedConversion, info.OutputFormat)
	case pixel.OutputYUV422:
		copy(c.scratchB[:pix*2], frame[:pix*2])
		info.ByteSize = pix * 2
	case pixel.OutputRGB888:
		convert.YUV422ToRGB(frame, pix, c.scratchB)
		info.ByteSize = pix * 3
	default:
		convert.YUV422ToRGB(frame, pix, c.scratchA)
		convert.RGBToBGR(c.scratchA, pix, c.scratchB)
		info.ByteSize = pix * 3
		return pixel.OutputBGR888, nil
	}
	return info.OutputFormat, nil
}

// applyMirrorFlip reshuffles the produced raster in the second arena.
// The transforms are out-of-place, so single ops stage through the
// first arena and copy back; the combined op mirrors into the stage and
// flips straight back, saving one copy.
func (c *Context) applyMirrorFlip(info *pixel.FrameInfo, format pixel.OutputFormat) {
	res := info.Resolution()
	n := info.ByteSize
	switch info.MirrorFlip {
	case pixel.MirrorOnly:
		geometry.Mirror(c.scratchB[:n], res, format, c.scratchA)
		copy(c.scratchB[:n], c.scratchA[:n])
	case pixel.FlipOnly:
		geometry.Flip(c.scratchB[:n], res, format, c.scratchA)
		copy(c.scratchB[:n], c.scratchA[:n])
	case pixel.MirrorAndFlip:
		geometry.Mirror(c.scratchB[:n], res, format, c.scratchA)
		geometry.Flip(c.scratchA[:n], res, format, c.scratchB)
	}
}

// applyRotate rotates the produced raster. The resolution passed to the
// transform is the pre-rotation geometry; Process reports the swapped
// bounding box to the caller.
func (c *Context) applyRotate(info *pixel.FrameInfo, format pixel.OutputFormat) {
	res := info.Resolution()
	n := info.ByteSize
	switch info.Rotate {
	case pixel.RotateLeft90:
		geometry.RotateLeft90(c.scratchB[:n], res, format, c.scratchA)
		copy(c.scratchB[:n], c.scratchA[:n])
	case pixel.RotateRight90:
		geometry.RotateRight90(c.scratchB[:n], res, format, c.scratchA)
		copy(c.scratchB[:n], c.scratchA[:n])
	case pixel.Rotate180:
		geometry.Rotate180(c.scratchB[:n], res, format, c.scratchA)
		copy(c.scratchB[:n], c.scratchA[:n])
	}
}
