// Package legend renders the temperature color bar displayed beside
// pseudocolored frames. The bar goes through the exact pseudocolor
// chain used for the live image, so legend and image always share the
// same color semantics, and its labels interpolate the frame's actual
// observed temperature span rather than a fixed scale.
package legend

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironpeak/thermaview/internal/convert"
	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pixel"
)

// LabelCount is the number of tick marks and temperature labels.
const LabelCount = 11

const tickLen = 5

// Render synthesizes the vertical gradient bar: a full-range 14-bit
// ramp, hottest at the top, mapped through the pseudocolor chain, with
// white tick marks at the label positions. Width must be even so the
// packed-pair mapping stays aligned per row.
func Render(width, height int, mode palette.Mode) (*image.RGBA, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("legend bar must be at least 2x2, got %dx%d", width, height)
	}
	if width%2 != 0 {
		return nil, fmt.Errorf("legend bar width must be even, got %d", width)
	}
	pix := width * height

	grad := make([]byte, pix*2)
	for y := 0; y < height; y++ {
		v := uint16(16383 - y*16383/(height-1))
		for x := 0; x < width; x++ {
			pixel.PutU16(grad, y*width+x, v)
		}
	}

	yuyv := make([]byte, pix*2)
	palette.MapY14(grad, pix, mode, yuyv)
	rgb := make([]byte, pix*3)
	convert.YUV422ToRGB(yuyv, pix, rgb)
	bgr := make([]byte, pix*3)
	convert.RGBToBGR(rgb, pix, bgr)

	bar := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < pix; i++ {
		bar.Pix[i*4+0] = bgr[i*3+2]
		bar.Pix[i*4+1] = bgr[i*3+1]
		bar.Pix[i*4+2] = bgr[i*3+0]
		bar.Pix[i*4+3] = 255
	}

	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i < LabelCount; i++ {
		y := i * (height - 1) / (LabelCount - 1)
		for x := 0; x < tickLen; x++ {
			bar.SetRGBA(x, y, white)
			bar.SetRGBA(width-1-x, y, white)
		}
	}
	return bar, nil
}

// DrawLabels writes the interpolated temperature labels to the right of
// a bar previously drawn at (barX, barY) on dst. Label i carries
// maxC - (maxC-minC)*i/(LabelCount-1) degrees Celsius, so the scale
// tracks the frame's observed range and must be redrawn per frame.
func DrawLabels(dst *image.RGBA, barX, barY, barWidth, barHeight int, maxC, minC float64) {
	for i := 0; i < LabelCount; i++ {
		t := maxC - (maxC-minC)*float64(i)/float64(LabelCount-1)
		y := barY + i*(barHeight-1)/(LabelCount-1)
		text := strconv.FormatFloat(t, 'f', 1, 64)

		x := barX + barWidth + 5
		// Black shadow behind white text keeps labels readable on any
		// bar color.
		drawString(dst, x+1, y+5, text, color.RGBA{0, 0, 0, 255})
		drawString(dst, x, y+4, text, color.RGBA{255, 255, 255, 255})
	}
}

func drawString(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
