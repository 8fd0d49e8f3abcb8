package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ironpeak/thermaview/internal/pixel"
	"github.com/ironpeak/thermaview/internal/thermal"
)

// StreamFrame aggregates one acquisition's buffers: the visible image
// frame and the radiometric frame, each with its own FrameInfo. The
// buffers are supplied and retained by the acquisition layer; a
// StreamFrame owns nothing.
type StreamFrame struct {
	ImageInfo pixel.FrameInfo
	TempInfo  pixel.FrameInfo
	Image     []byte
	Temp      []byte
}

// Source produces frames for a Runner. Next blocks until the producer
// publishes a frame, the context is canceled, or the stream ends, in
// which case it returns io.EOF.
type Source interface {
	Next(ctx context.Context) (*StreamFrame, error)
}

// Sink consumes each produced raster. Presentation backends (windows,
// encoders, files) implement this so the pipeline stays independent of
// any display library.
type Sink interface {
	Consume(frame []byte, width, height int) error
}

// Mode selects which per-frame path the Runner executes.
type Mode int

const (
	// ModeDisplay runs the regular enhancement/conversion chain.
	ModeDisplay Mode = iota
	// ModeSegmentation runs the temperature-band body segmentation over
	// the radiometric frame instead.
	ModeSegmentation
)

// Runner drives the pipeline over a frame stream with a strict
// one-frame-in-flight handshake: each frame is consumed, processed and
// delivered to the sink before the next one is requested, so the
// scratch arenas never see more than one writer.
type Runner struct {
	pctx *Context
	seg  *thermal.Segmenter

	mu   sync.Mutex
	mode Mode
}

// NewRunner pairs a processing context with a segmenter.
func NewRunner(pctx *Context, seg *thermal.Segmenter) *Runner {
	return &Runner{pctx: pctx, seg: seg}
}

// SetMode switches the per-frame path. The new mode takes effect at the
// next frame boundary; it is read exactly once per frame.
func (r *Runner) SetMode(m Mode) {
	r.mu.Lock()
	r.mode = m
	r.mu.Unlock()
}

// CurrentMode returns the mode the next frame will run under.
func (r *Runner) CurrentMode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Run processes frames until the source is exhausted or ctx is
// canceled. Per-frame failures (unsupported conversions, short frames)
// are logged and the frame is dropped; only source and sink errors end
// the run.
func (r *Runner) Run(ctx context.Context, src Source, sink Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		var (
			data []byte
			w, h int
		)
		switch r.CurrentMode() {
		case ModeSegmentation:
			w, h = frame.TempInfo.Width, frame.TempInfo.Height
			data, err = r.seg.Segment(frame.Temp, w, h)
		default:
			data, w, h, err = r.pctx.Process(frame.Image, &frame.ImageInfo)
		}
		if err != nil {
			logrus.WithError(err).Warn("frame dropped")
			continue
		}
		if err := sink.Consume(data, w, h); err != nil {
			return err
		}
	}
}
