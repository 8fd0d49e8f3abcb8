package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironpeak/thermaview/internal/pixel"
)

func y14Frame(samples ...uint16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		pixel.PutU16(buf, i, v)
	}
	return buf
}

func samplesOf(buf []byte, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = pixel.U16(buf, i)
	}
	return out
}

func TestEnhanceOffCopiesExactly(t *testing.T) {
	src := y14Frame(7, 4096, 16383, 0)
	dst := make([]byte, len(src))
	Enhance(src, false, 4, dst)
	assert.Equal(t, src, dst)
}

func TestEnhanceStretchesToFullRange(t *testing.T) {
	src := y14Frame(1000, 2000, 3000)
	dst := make([]byte, len(src))
	Enhance(src, true, 3, dst)

	got := samplesOf(dst, 3)
	assert.Equal(t, uint16(0), got[0], "minimum maps to 0")
	assert.Equal(t, uint16(16383), got[2], "maximum maps to full scale")
	// (2000-1000)*16383/2000
	assert.Equal(t, uint16(8191), got[1])
}

func TestEnhancePreservesOrdering(t *testing.T) {
	src := y14Frame(10, 5, 200, 200, 90)
	dst := make([]byte, len(src))
	Enhance(src, true, 5, dst)

	got := samplesOf(dst, 5)
	assert.Less(t, got[1], got[0])
	assert.Less(t, got[0], got[4])
	assert.Less(t, got[4], got[2])
	assert.Equal(t, got[2], got[3], "equal inputs stay equal")
}

func TestEnhanceConstantFramePassesThrough(t *testing.T) {
	src := y14Frame(4242, 4242, 4242, 4242)
	dst := make([]byte, len(src))
	Enhance(src, true, 4, dst)
	assert.Equal(t, src, dst, "max==min must not stretch")
}
