// Package convert implements the elementary color-space kernels of the
// pipeline: pure, stateless transforms over packed row-major buffers.
// Chroma math is an integer approximation of full-range BT.601.
package convert

import "github.com/ironpeak/thermaview/internal/pixel"

// Y16ToY14 drops the two low bits of every 16-bit sample. src and dst
// may be the same buffer.
func Y16ToY14(src, dst []byte, pixels int) {
	for i := 0; i < pixels; i++ {
		pixel.PutU16(dst, i, pixel.U16(src, i)>>2)
	}
}

// Y14ToYUV444 expands 14-bit samples to grayscale YUV444 triples: the
// luma is the high 8 bits of the sample, chroma is neutral.
func Y14ToYUV444(src []byte, pixels int, dst []byte) {
	for i := 0; i < pixels; i++ {
		dst[i*3+0] = uint8(pixel.U16(src, i) >> 6)
		dst[i*3+1] = 128
		dst[i*3+2] = 128
	}
}

// YUV444ToYUV422 downsamples full-chroma triples to packed YUYV,
// averaging the chroma of each horizontal pixel pair. pixels must be
// even; a trailing odd pixel is dropped.
func YUV444ToYUV422(src []byte, pixels int, dst []byte) {
	for i := 0; i+1 < pixels; i += 2 {
		a := src[i*3 : i*3+3]
		b := src[(i+1)*3 : (i+1)*3+3]
		o := dst[i*2 : i*2+4]
		o[0] = a[0]
		o[1] = uint8((int(a[1]) + int(b[1])) / 2)
		o[2] = b[0]
		o[3] = uint8((int(a[2]) + int(b[2])) / 2)
	}
}

// YUV422ToRGB expands packed YUYV to RGB888. Both pixels of a pair share
// the pair's chroma. src and dst must not overlap.
func YUV422ToRGB(src []byte, pixels int, dst []byte) {
	for i := 0; i+1 < pixels; i += 2 {
		s := src[i*2 : i*2+4]
		y0, u, y1, v := int(s[0]), int(s[1]), int(s[2]), int(s[3])
		putRGB(dst[i*3:], y0, u, v)
		putRGB(dst[(i+1)*3:], y1, u, v)
	}
}

func putRGB(o []byte, y, u, v int) {
	u -= 128
	v -= 128
	o[0] = clamp8(y + ((359 * v) >> 8))
	o[1] = clamp8(y - ((88*u + 183*v) >> 8))
	o[2] = clamp8(y + ((454 * u) >> 8))
}

// RGBToBGR swaps the red and blue channels of every pixel. src and dst
// may be the same buffer.
func RGBToBGR(src []byte, pixels int, dst []byte) {
	for i := 0; i < pixels; i++ {
		r, g, b := src[i*3], src[i*3+1], src[i*3+2]
		dst[i*3], dst[i*3+1], dst[i*3+2] = b, g, r
	}
}

// Y14ToRGB expands 14-bit samples to grayscale RGB888.
func Y14ToRGB(src []byte, pixels int, dst []byte) {
	for i := 0; i < pixels; i++ {
		g := uint8(pixel.U16(src, i) >> 6)
		dst[i*3+0] = g
		dst[i*3+1] = g
		dst[i*3+2] = g
	}
}

func clamp8(x int) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}
