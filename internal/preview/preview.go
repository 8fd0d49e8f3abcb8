// Package preview turns produced rasters into standard images for
// offline inspection: wrapping any pipeline output format in an
// image.RGBA, composing the temperature legend beside it, and writing
// the result to disk with optional smoothing and scaling.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironpeak/thermaview/internal/convert"
	"github.com/ironpeak/thermaview/internal/legend"
	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pixel"
)

// Legend layout, matching the live viewer.
const (
	barWidth  = 40
	barHeight = 256
	margin    = 20
	labelArea = 60
)

// Options controls the finishing steps applied before the image is
// encoded.
type Options struct {
	// Smooth is the gaussian blur radius; zero disables smoothing.
	Smooth float64
	// Scale resizes the final image by this factor; zero or one keeps
	// the original size.
	Scale float64
}

// FromRaster wraps a produced raster in an image.RGBA. The format must
// be whatever the pipeline actually produced, including the implicit
// BGR fallbacks.
func FromRaster(data []byte, w, h int, format pixel.OutputFormat) (*image.RGBA, error) {
	pix := w * h
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	switch format {
	case pixel.OutputY14:
		for i := 0; i < pix; i++ {
			g := uint8(pixel.U16(data, i) >> 6)
			img.Pix[i*4+0] = g
			img.Pix[i*4+1] = g
			img.Pix[i*4+2] = g
			img.Pix[i*4+3] = 255
		}
	case pixel.OutputYUV444:
		for i := 0; i < pix; i++ {
			r, g, b := color.YCbCrToRGB(data[i*3], data[i*3+1], data[i*3+2])
			img.Pix[i*4+0] = r
			img.Pix[i*4+1] = g
			img.Pix[i*4+2] = b
			img.Pix[i*4+3] = 255
		}
	case pixel.OutputYUV422:
		rgb := make([]byte, pix*3)
		convert.YUV422ToRGB(data, pix, rgb)
		fillRGB(img, rgb, pix, false)
	case pixel.OutputRGB888:
		fillRGB(img, data, pix, false)
	case pixel.OutputBGR888:
		fillRGB(img, data, pix, true)
	default:
		return nil, fmt.Errorf("cannot preview format %v", format)
	}
	return img, nil
}

func fillRGB(img *image.RGBA, data []byte, pix int, swapped bool) {
	for i := 0; i < pix; i++ {
		r, g, b := data[i*3], data[i*3+1], data[i*3+2]
		if swapped {
			r, b = b, r
		}
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 255
	}
}

// WithLegend lays the frame and the temperature bar side by side on a
// black canvas, the bar labeled with the observed Celsius span.
func WithLegend(img *image.RGBA, mode palette.Mode, maxC, minC float64) (*image.RGBA, error) {
	bar, err := legend.Render(barWidth, barHeight, mode)
	if err != nil {
		return nil, err
	}

	imgW, imgH := img.Bounds().Dx(), img.Bounds().Dy()
	canvasW := imgW + margin + barWidth + labelArea
	canvasH := imgH
	if barHeight > canvasH {
		canvasH = barHeight
	}

	canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, imgW, imgH), img, image.Point{}, draw.Src)

	barX := imgW + margin
	barY := (canvasH - barHeight) / 2
	draw.Draw(canvas, image.Rect(barX, barY, barX+barWidth, barY+barHeight), bar, image.Point{}, draw.Src)
	legend.DrawLabels(canvas, barX, barY, barWidth, barHeight, maxC, minC)
	return canvas, nil
}

// Save applies the finishing options and encodes the image to path; the
// encoding is chosen by the file extension.
func Save(img image.Image, path string, opts Options) error {
	out := img
	if opts.Smooth > 0 {
		out = blur.Gaussian(out, opts.Smooth)
	}
	if opts.Scale > 0 && opts.Scale != 1 {
		w := int(float64(out.Bounds().Dx()) * opts.Scale)
		out = imaging.Resize(out, w, 0, imaging.Lanczos)
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
