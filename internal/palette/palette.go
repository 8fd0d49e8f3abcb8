// Package palette provides the pseudocolor lookup used to render
// radiometric frames for display.
//
// The table is a 256-entry ironbow-style ramp built by blending anchor
// colors in Lab space, stored as luma/chroma triples ready for packed
// YUYV output. Two channel-order variants exist: one for chains that
// terminate at RGB888 and one, with red and blue pre-swapped, for
// chains that terminate at BGR888. The caller must pick the variant
// matching the final channel order of its conversion chain.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironpeak/thermaview/internal/pixel"
)

// Mode selects the channel-order variant of the lookup table.
type Mode int

const (
	// ModeRGB is the variant for chains whose final conversion stops at
	// RGB888 or packed YUV.
	ModeRGB Mode = iota
	// ModeBGR is the red/blue-swapped variant for chains that end with
	// an RGB-to-BGR channel swap.
	ModeBGR
)

type entry struct {
	y, u, v uint8
}

// Anchor colors of the ramp, cold to hot.
var ramp = []struct {
	pos float64
	hex string
}{
	{0.00, "#000000"},
	{0.15, "#20008c"},
	{0.40, "#cd0e66"},
	{0.70, "#ff7a00"},
	{0.90, "#ffdd33"},
	{1.00, "#ffffff"},
}

var lutRGB, lutBGR = buildTables()

func buildTables() (rgb, bgr [256]entry) {
	for i := 0; i < 256; i++ {
		c := rampAt(float64(i) / 255.0)
		r, g, b := c.RGB255()
		rgb[i] = encodeYUV(r, g, b)
		bgr[i] = encodeYUV(b, g, r)
	}
	return rgb, bgr
}

func rampAt(t float64) colorful.Color {
	for i := 0; i < len(ramp)-1; i++ {
		lo, hi := ramp[i], ramp[i+1]
		if t > hi.pos {
			continue
		}
		cl, _ := colorful.Hex(lo.hex)
		ch, _ := colorful.Hex(hi.hex)
		return cl.BlendLab(ch, (t-lo.pos)/(hi.pos-lo.pos)).Clamped()
	}
	c, _ := colorful.Hex(ramp[len(ramp)-1].hex)
	return c
}

// encodeYUV is the full-range BT.601 forward transform, the inverse of
// the integer math in the convert package.
func encodeYUV(r, g, b uint8) entry {
	ri, gi, bi := int(r), int(g), int(b)
	y := (77*ri + 150*gi + 29*bi) >> 8
	u := 128 + ((-43*ri - 85*gi + 128*bi) >> 8)
	v := 128 + ((128*ri - 107*gi - 21*bi) >> 8)
	return entry{y: clamp8(y), u: clamp8(u), v: clamp8(v)}
}

// MapY14 maps 14-bit samples through the pseudocolor table into packed
// YUYV. Each pixel pair shares averaged chroma, so pixels should be
// even; a trailing odd pixel is left untouched. dst needs pixels*2
// bytes. Samples above the 14-bit range clamp to the hottest entry.
func MapY14(src []byte, pixels int, mode Mode, dst []byte) {
	lut := &lutRGB
	if mode == ModeBGR {
		lut = &lutBGR
	}
	for i := 0; i+1 < pixels; i += 2 {
		e0 := lut[tableIndex(pixel.U16(src, i))]
		e1 := lut[tableIndex(pixel.U16(src, i+1))]
		o := dst[i*2 : i*2+4]
		o[0] = e0.y
		o[1] = uint8((int(e0.u) + int(e1.u)) / 2)
		o[2] = e1.y
		o[3] = uint8((int(e0.v) + int(e1.v)) / 2)
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

func tableIndex(v uint16) int {
	i := int(v >> 6)
	if i > 255 {
		i = 255
	}
	return i
}
