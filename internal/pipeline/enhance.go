package pipeline

import "github.com/ironpeak/thermaview/internal/pixel"

// fullScale is the top of the 14-bit sample range.
const fullScale = 16383

// Enhance range-normalizes a Y14 frame into dst.
//
// With enhancement off the samples are copied byte for byte. With it on
// the frame is linearly stretched to [0, fullScale] in two passes: one
// scan for the observed minimum and maximum, one to remap every sample
// as (v-min)*16383/(max-min) with truncating integer division. A
// constant-valued frame passes through unchanged.
func Enhance(src []byte, enhanceOn bool, pixels int, dst []byte) {
	if !enhanceOn {
		copy(dst[:pixels*2], src[:pixels*2])
		return
	}
	minV, maxV := uint16(0xffff), uint16(0)
	for i := 0; i < pixels; i++ {
		v := pixel.U16(src, i)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV == minV {
		copy(dst[:pixels*2], src[:pixels*2])
		return
	}
	span := uint32(maxV - minV)
	for i := 0; i < pixels; i++ {
		v := uint32(pixel.U16(src, i) - minV)
		pixel.PutU16(dst, i, uint16(v*fullScale/span))
	}
}
