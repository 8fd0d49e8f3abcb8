package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedConversion reports a format pair with no defined
	// mapping. Luminance-only targets cannot be recovered from
	// chroma-subsampled input, so YUV422-origin frames never convert to
	// Y14 or YUV444.
	ErrUnsupportedConversion = errors.New("unsupported format conversion")

	// ErrEmptyFrame reports a zero-size input frame, distinct from a
	// declared-unsupported conversion.
	ErrEmptyFrame = errors.New("empty frame")

	// ErrClosed reports use of a Context after Close.
	ErrClosed = errors.New("pipeline context is closed")
)

// Context owns the session-lifetime scratch arenas shared by every
// frame. It is single-owner state: the caller guarantees one frame in
// flight at a time.
type Context struct {
	width    int
	height   int
	scratchA []byte
	scratchB []byte
}

// NewContext allocates the scratch arenas for a session with fixed
// frame geometry. Both arenas are sized for the worst-case three bytes
// per pixel and are allocated together; the session must not proceed
// without both.
func NewContext(width, height int) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid session geometry %dx%d", width, height)
	}
	n := width * height * 3
	return &Context{
		width:    width,
		height:   height,
		scratchA: make([]byte, n),
		scratchB: make([]byte, n),
	}, nil
}

// Close releases both scratch arenas. The Context must not be used
// afterwards; Process reports ErrClosed.
func (c *Context) Close() {
	c.scratchA = nil
	c.scratchB = nil
}

func (c *Context) closed() bool { return c.scratchA == nil }
