// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/adpcmpbx/adpcm"
)

// DefaultSampleRate is the rate declared in the rewritten header.
const DefaultSampleRate = 16000

// State is the position of a Transform in its stream.
type State int

const (
	// AwaitingHeader collects the leading 44 bytes of the input.
	AwaitingHeader State = iota
	// StreamingSamples decodes every further byte into PCM.
	StreamingSamples
)

func (s State) String() string {
	switch s {
	case AwaitingHeader:
		return "AwaitingHeader"
	case StreamingSamples:
		return "StreamingSamples"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transform rewrites an IMA ADPCM WAV stream into a mono 16-bit PCM WAV
// stream, one pushed chunk at a time.
//
// The first 44 input bytes are taken as the source header and replaced by a
// PCM header; it is emitted once, together with the PCM for any bytes that
// follow it in the same chunk. Every later byte yields four output bytes.
// A Transform holds one stream's decoder state and must not be shared.
type Transform struct {
	state  State
	header [HeaderSize]byte
	have   int

	dec adpcm.Decoder
	out []byte

	sampleRate  int
	checkHeader bool

	payload  int64
	err      error
	finished bool
}

// TransformOption configures a Transform.
type TransformOption func(*Transform)

// WithSampleRate sets the sample rate declared in the output header. A zero
// or negative rate keeps DefaultSampleRate. A rate above MaxSampleRate makes
// every Push and Finish fail with ErrInvalidSampleRate.
func WithSampleRate(rate int) TransformOption {
	return func(t *Transform) {
		switch {
		case rate <= 0:
		case rate > MaxSampleRate:
			t.err = checkSampleRate(rate)
		default:
			t.sampleRate = rate
		}
	}
}

// WithHeaderCheck rejects input whose leading 44 bytes are not a canonical
// RIFF/WAVE header.
func WithHeaderCheck() TransformOption {
	return func(t *Transform) { t.checkHeader = true }
}

// NewTransform returns a Transform awaiting the source header.
func NewTransform(opts ...TransformOption) *Transform {
	t := &Transform{sampleRate: DefaultSampleRate}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State reports where the transform is in its stream.
func (t *Transform) State() State { return t.state }

// SampleRate is the rate declared in the output header.
func (t *Transform) SampleRate() int { return t.sampleRate }

// PayloadBytes is the number of ADPCM bytes decoded so far.
func (t *Transform) PayloadBytes() int64 { return t.payload }

// SourceHeader returns the consumed input header once it is complete.
func (t *Transform) SourceHeader() ([HeaderSize]byte, bool) {
	return t.header, t.state == StreamingSamples
}

// Push consumes chunk and returns the output bytes it produced. The result
// aliases an internal buffer and is only valid until the next call.
//
// The source header may span several chunks. Until its 44th byte arrives
// Push buffers the bytes and returns an empty slice; a stream that never
// completes the header fails at Finish with ErrTruncatedHeader.
func (t *Transform) Push(chunk []byte) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.finished {
		return nil, ErrTransformFinished
	}

	t.out = t.out[:0]

	if t.state == AwaitingHeader {
		n := copy(t.header[t.have:], chunk)
		t.have += n
		chunk = chunk[n:]

		if t.have < HeaderSize {
			return t.out, nil
		}

		if err := t.emitHeader(); err != nil {
			t.err = err
			return nil, err
		}
	}

	t.payload += int64(len(chunk))
	t.out = t.dec.AppendPCM16(t.out, chunk)

	return t.out, nil
}

// emitHeader is the only place the output header is produced; it is
// reachable only from AwaitingHeader.
func (t *Transform) emitHeader() error {
	if t.checkHeader {
		if _, err := ParseHeader(t.header[:]); err != nil {
			return fmt.Errorf("source header: %w", err)
		}
	}

	hdr := PCM16Header(t.sampleRate, UnknownSize).Marshal()
	t.out = append(t.out, hdr[:]...)
	t.state = StreamingSamples

	return nil
}

// Finish ends the stream. It fails with ErrTruncatedHeader when the input
// ended before a full header arrived. Calling Finish again is a no-op.
func (t *Transform) Finish() error {
	if t.err != nil {
		return t.err
	}
	if t.finished {
		return nil
	}
	t.finished = true

	if t.state == AwaitingHeader {
		t.err = fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedHeader, t.have, HeaderSize)
		return t.err
	}

	return nil
}
