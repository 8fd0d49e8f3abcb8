// Command thermaview processes a raw thermal sensor frame into a
// viewable image file.
//
// It reads a single raw frame (Y14, Y16 or packed YUV422), runs the
// display pipeline or the temperature-band segmentation over it, and
// writes the result as an image, optionally with the temperature legend
// composed beside it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironpeak/thermaview/internal/palette"
	"github.com/ironpeak/thermaview/internal/pipeline"
	"github.com/ironpeak/thermaview/internal/pixel"
	"github.com/ironpeak/thermaview/internal/preview"
	"github.com/ironpeak/thermaview/internal/thermal"
)

// Version is set by ldflags during build.
var Version = "dev"

func main() {
	var (
		inPath    = flag.String("in", "", "raw frame file to process (required)")
		outPath   = flag.String("out", "out.png", "output image file")
		width     = flag.Int("width", 0, "frame width in pixels (required)")
		height    = flag.Int("height", 0, "frame height in pixels (required)")
		inFormat  = flag.String("input-format", "y14", "input format: y14, y16 or yuv422")
		outFormat = flag.String("output-format", "bgr", "output format: y14, yuv444, yuv422, rgb or bgr")
		enhance   = flag.Bool("enhance", true, "linear min-max stretch of the raw samples")
		pseudo    = flag.Bool("pseudocolor", true, "map samples through the pseudocolor palette")
		rotate    = flag.String("rotate", "none", "rotation: none, left90, right90 or 180")
		mirror    = flag.Bool("mirror", false, "mirror left-to-right")
		vflip     = flag.Bool("flip", false, "flip top-to-bottom")
		segment   = flag.Bool("segment", false, "temperature-band body segmentation instead of the display chain")
		bandMin   = flag.Float64("band-min", thermal.DefaultBandMinC, "segmentation band lower bound, degrees C")
		bandMax   = flag.Float64("band-max", thermal.DefaultBandMaxC, "segmentation band upper bound, degrees C")
		withBar   = flag.Bool("legend", false, "compose the temperature legend beside the image")
		smooth    = flag.Float64("smooth", 0, "gaussian smoothing radius for the preview, 0 disables")
		scale     = flag.Float64("scale", 1, "scale factor for the preview")
		logLevel  = flag.String("log-level", "info", "log level: debug, info, warn or error")
		version   = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("thermaview %s\n", Version)
		return
	}

	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("bad log level %q: %v", *logLevel, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	if *inPath == "" || *width <= 0 || *height <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(&config{
		inPath:    *inPath,
		outPath:   *outPath,
		width:     *width,
		height:    *height,
		inFormat:  *inFormat,
		outFormat: *outFormat,
		enhance:   *enhance,
		pseudo:    *pseudo,
		rotate:    *rotate,
		mirror:    *mirror,
		flip:      *vflip,
		segment:   *segment,
		bandMin:   *bandMin,
		bandMax:   *bandMax,
		legend:    *withBar,
		smooth:    *smooth,
		scale:     *scale,
	}); err != nil {
		logrus.Fatal(err)
	}
}

type config struct {
	inPath, outPath    string
	width, height      int
	inFormat, outFormat string
	enhance, pseudo    bool
	rotate             string
	mirror, flip       bool
	segment            bool
	bandMin, bandMax   float64
	legend             bool
	smooth             float64
	scale              float64
}

func run(cfg *config) error {
	raw, err := os.ReadFile(cfg.inPath)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	inFmt, err := pixel.ParseInputFormat(cfg.inFormat)
	if err != nil {
		return err
	}
	outFmt, err := pixel.ParseOutputFormat(cfg.outFormat)
	if err != nil {
		return err
	}
	rot, err := pixel.ParseRotateSide(cfg.rotate)
	if err != nil {
		return err
	}

	// Read the observed temperature span before processing: a Y16
	// frame is normalized in place and loses its radiometric scale.
	var haveTemps bool
	var minC, maxC float64
	if inFmt != pixel.InputYUV422 && len(raw) >= cfg.width*cfg.height*2 {
		minRaw, maxRaw := thermal.Range(raw, cfg.width*cfg.height)
		minC, maxC = thermal.RawToCelsius(minRaw), thermal.RawToCelsius(maxRaw)
		haveTemps = true
	}

	var frame []byte
	var outW, outH int
	var producedFmt pixel.OutputFormat

	if cfg.segment {
		if inFmt == pixel.InputYUV422 {
			return fmt.Errorf("segmentation needs a radiometric y14/y16 frame")
		}
		seg := thermal.NewSegmenter(thermal.RadiometricDecoder{})
		if err := seg.SetBand(cfg.bandMin, cfg.bandMax); err != nil {
			return err
		}
		frame, err = seg.Segment(raw, cfg.width, cfg.height)
		if err != nil {
			return fmt.Errorf("segment frame: %w", err)
		}
		outW, outH = cfg.width, cfg.height
		producedFmt = pixel.OutputBGR888
	} else {
		if cfg.pseudo && (outFmt == pixel.OutputY14 || outFmt == pixel.OutputYUV444) {
			logrus.Warnf("pseudocolor renders %v as bgr", outFmt)
			outFmt = pixel.OutputBGR888
		}
		info := pixel.FrameInfo{
			Width:        cfg.width,
			Height:       cfg.height,
			InputFormat:  inFmt,
			OutputFormat: outFmt,
			Enhance:      cfg.enhance,
			PseudoColor:  cfg.pseudo,
			Rotate:       rot,
			MirrorFlip:   mirrorFlip(cfg.mirror, cfg.flip),
		}
		pctx, err := pipeline.NewContext(cfg.width, cfg.height)
		if err != nil {
			return err
		}
		defer pctx.Close()
		frame, outW, outH, err = pctx.Process(raw, &info)
		if err != nil {
			return fmt.Errorf("process frame: %w", err)
		}
		producedFmt = outFmt
	}

	img, err := preview.FromRaster(frame, outW, outH, producedFmt)
	if err != nil {
		return err
	}

	if cfg.legend {
		// The label scale comes from the radiometric input's observed
		// range, so it is only available for y14/y16 sources.
		if haveTemps {
			mode := palette.ModeRGB
			if producedFmt == pixel.OutputBGR888 {
				mode = palette.ModeBGR
			}
			img, err = preview.WithLegend(img, mode, maxC, minC)
			if err != nil {
				return err
			}
		} else {
			logrus.Warn("legend skipped: no radiometric data in input")
		}
	}

	if err := preview.Save(img, cfg.outPath, preview.Options{Smooth: cfg.smooth, Scale: cfg.scale}); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"out":    cfg.outPath,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("frame written")
	return nil
}

func mirrorFlip(mirror, flip bool) pixel.MirrorFlip {
	switch {
	case mirror && flip:
		return pixel.MirrorAndFlip
	case mirror:
		return pixel.MirrorOnly
	case flip:
		return pixel.FlipOnly
	}
	return pixel.MirrorFlipNone
}
