package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironpeak/thermaview/internal/pixel"
	"github.com/ironpeak/thermaview/internal/thermal"
)

// sliceSource replays a fixed list of frames and then reports io.EOF.
type sliceSource struct {
	frames []*StreamFrame
	next   int
}

func (s *sliceSource) Next(ctx context.Context) (*StreamFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

type recordingSink struct {
	sizes  []int
	widths []int
	fail   error
}

func (s *recordingSink) Consume(frame []byte, width, height int) error {
	if s.fail != nil {
		return s.fail
	}
	s.sizes = append(s.sizes, len(frame))
	s.widths = append(s.widths, width)
	return nil
}

func displayFrame(w, h int) *StreamFrame {
	return &StreamFrame{
		ImageInfo: pixel.FrameInfo{
			Width: w, Height: h,
			InputFormat:  pixel.InputY14,
			OutputFormat: pixel.OutputY14,
		},
		Image: make([]byte, w*h*2),
	}
}

func TestRunnerDrainsSourceUntilEOF(t *testing.T) {
	c := newTestContext(t, 2, 2)
	r := NewRunner(c, thermal.NewSegmenter(thermal.RadiometricDecoder{}))

	src := &sliceSource{frames: []*StreamFrame{
		displayFrame(2, 2), displayFrame(2, 2), displayFrame(2, 2),
	}}
	sink := &recordingSink{}
	require.NoError(t, r.Run(context.Background(), src, sink))
	assert.Equal(t, []int{8, 8, 8}, sink.sizes)
	assert.Equal(t, []int{2, 2, 2}, sink.widths)
}

func TestRunnerDropsFailingFrames(t *testing.T) {
	c := newTestContext(t, 2, 2)
	r := NewRunner(c, thermal.NewSegmenter(thermal.RadiometricDecoder{}))

	bad := &StreamFrame{
		ImageInfo: pixel.FrameInfo{
			Width: 2, Height: 2,
			InputFormat:  pixel.InputYUV422,
			OutputFormat: pixel.OutputY14,
		},
		Image: make([]byte, 8),
	}
	src := &sliceSource{frames: []*StreamFrame{bad, displayFrame(2, 2)}}
	sink := &recordingSink{}
	require.NoError(t, r.Run(context.Background(), src, sink))
	assert.Len(t, sink.sizes, 1, "the unsupported frame is dropped, the good one delivered")
}

func TestRunnerSegmentationMode(t *testing.T) {
	c := newTestContext(t, 2, 2)
	r := NewRunner(c, thermal.NewSegmenter(thermal.RadiometricDecoder{}))
	r.SetMode(ModeSegmentation)
	assert.Equal(t, ModeSegmentation, r.CurrentMode())

	temp := make([]byte, 2*2*2)
	body := thermal.CelsiusToRaw(35)
	for i := 0; i < 4; i++ {
		pixel.PutU16(temp, i, body)
	}
	frame := &StreamFrame{
		TempInfo: pixel.FrameInfo{Width: 2, Height: 2},
		Temp:     temp,
	}
	src := &sliceSource{frames: []*StreamFrame{frame}}
	sink := &recordingSink{}
	require.NoError(t, r.Run(context.Background(), src, sink))
	require.Len(t, sink.sizes, 1)
	assert.Equal(t, 2*2*3, sink.sizes[0], "segmentation delivers a BGR raster")
}

func TestRunnerStopsOnSinkError(t *testing.T) {
	c := newTestContext(t, 2, 2)
	r := NewRunner(c, thermal.NewSegmenter(thermal.RadiometricDecoder{}))

	src := &sliceSource{frames: []*StreamFrame{displayFrame(2, 2), displayFrame(2, 2)}}
	sinkErr := errors.New("display gone")
	err := r.Run(context.Background(), src, &recordingSink{fail: sinkErr})
	assert.ErrorIs(t, err, sinkErr)
}

func TestRunnerHonorsCancellation(t *testing.T) {
	c := newTestContext(t, 2, 2)
	r := NewRunner(c, thermal.NewSegmenter(thermal.RadiometricDecoder{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, &sliceSource{frames: []*StreamFrame{displayFrame(2, 2)}}, &recordingSink{})
	assert.ErrorIs(t, err, context.Canceled)
}
