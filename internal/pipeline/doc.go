// Package pipeline orchestrates the per-frame processing chain that
// turns a raw radiometric frame into a displayable raster.
//
// # Processing Chain
//
// Each frame runs enhancement, then either the pseudocolor chain or a
// direct format conversion, then mirror/flip and rotation:
//
//  1. Y16 input is normalized to Y14 in place (a lossless two-bit
//     down-shift).
//  2. The enhancer stretches the 14-bit samples into the first scratch
//     arena.
//  3. With pseudocolor on, the samples are mapped through the palette
//     lookup and converted toward the requested output format; with it
//     off, the direct grayscale conversion runs.
//  4. Mirror/flip and rotation reshuffle the produced raster through
//     the scratch arenas.
//
// FrameInfo.ByteSize is set as the last action of whichever branch
// executes, including the declared-unsupported branches where it is
// forced to zero.
//
// # Buffer Ownership
//
// A Context owns two scratch arenas sized once at session start for the
// worst-case three bytes per pixel. They are reused by every frame and
// every intermediate stage and are never resized; geometry is fixed for
// the life of the session. Buffers returned by Process alias the second
// arena and are only valid until the next call.
//
// # Concurrency
//
// The pipeline is strictly single-threaded and not reentrant: one frame
// is in flight at a time and the Context takes no locks of its own. The
// Runner enforces the one-frame-in-flight handshake by construction —
// it consumes, processes and delivers each frame to completion before
// asking the source for the next one.
package pipeline
