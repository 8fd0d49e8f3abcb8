// Package geometry implements the raster transforms applied after
// format conversion: quarter and half rotations, mirror and flip.
//
// All transforms are out-of-place and copy whole pixels, so they work
// on any packed format given its bytes per pixel. src and dst must not
// overlap; none of the transforms ever reads dst. The resolution is
// always the pre-rotation geometry of src — callers that need the final
// bounding box after a quarter rotation swap width and height
// themselves.
package geometry

import "github.com/ironpeak/thermaview/internal/pixel"

// RotateLeft90 rotates the frame 90 degrees counter-clockwise. The
// destination is res.Height pixels wide.
func RotateLeft90(src []byte, res pixel.Resolution, format pixel.OutputFormat, dst []byte) {
	bpp := format.BytesPerPixel()
	w, h := res.Width, res.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			movePixel(dst, (w-1-x)*h+y, src, y*w+x, bpp)
		}
	}
}

// RotateRight90 rotates the frame 90 degrees clockwise. The destination
// is res.Height pixels wide.
func RotateRight90(src []byte, res pixel.Resolution, format pixel.OutputFormat, dst []byte) {
	bpp := format.BytesPerPixel()
	w, h := res.Width, res.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			movePixel(dst, x*h+(h-1-y), src, y*w+x, bpp)
		}
	}
}

// Rotate180 rotates the frame half a turn; geometry is unchanged.
func Rotate180(src []byte, res pixel.Resolution, format pixel.OutputFormat, dst []byte) {
	bpp := format.BytesPerPixel()
	w, h := res.Width, res.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			movePixel(dst, (h-1-y)*w+(w-1-x), src, y*w+x, bpp)
		}
	}
}

// Mirror reflects the frame left-to-right.
func Mirror(src []byte, res pixel.Resolution, format pixel.OutputFormat, dst []byte) {
	bpp := format.BytesPerPixel()
	w, h := res.Width, res.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			movePixel(dst, y*w+(w-1-x), src, y*w+x, bpp)
		}
	}
}

// Flip reflects the frame top-to-bottom.
func Flip(src []byte, res pixel.Resolution, format pixel.OutputFormat, dst []byte) {
	bpp := format.BytesPerPixel()
	w, h := res.Width, res.Height
	for y := 0; y < h; y++ {
		copy(dst[(h-1-y)*w*bpp:(h-y)*w*bpp], src[y*w*bpp:(y+1)*w*bpp])
	}
}

func movePixel(dst []byte, di int, src []byte, si, bpp int) {
	copy(dst[di*bpp:(di+1)*bpp], src[si*bpp:(si+1)*bpp])
}
