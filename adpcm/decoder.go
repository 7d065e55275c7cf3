// SPDX-License-Identifier: EPL-2.0

package adpcm

import "encoding/binary"

// State is the running decoder (or encoder) state of one IMA ADPCM stream.
// The zero value is the start-of-stream state.
type State struct {
	Predictor int16
	StepIndex uint8
}

// Step decodes a single 4-bit code against s and returns the next state
// together with the reconstructed sample. Only the low 4 bits of code are used.
//
// Step is a pure function: the same state and code always produce the same
// result.
func Step(s State, code uint8) (State, int16) {
	code &= 0x0F
	idx := clampIndex(int(s.StepIndex))
	step := stepTable[idx]

	diff := step >> 3
	if code&4 != 0 {
		diff += step
	}
	if code&2 != 0 {
		diff += step >> 1
	}
	if code&1 != 0 {
		diff += step >> 2
	}

	pred := int32(s.Predictor)
	if code&8 != 0 {
		pred -= diff
	} else {
		pred += diff
	}

	next := State{
		Predictor: clampInt16(pred),
		StepIndex: uint8(clampIndex(idx + int(indexTable[code]))),
	}

	return next, next.Predictor
}

// Decoder decodes a nibble stream sequentially. A Decoder must not be used
// from more than one goroutine; each stream needs its own instance.
type Decoder struct {
	state State
}

// NewDecoder returns a decoder in the start-of-stream state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// State returns a snapshot of the current decoder state.
func (d *Decoder) State() State { return d.state }

// SetState replaces the decoder state, clamping the step index.
func (d *Decoder) SetState(s State) {
	s.StepIndex = uint8(clampIndex(int(s.StepIndex)))
	d.state = s
}

// Reset returns the decoder to the start-of-stream state.
func (d *Decoder) Reset() { d.state = State{} }

// DecodeSample decodes one 4-bit code and advances the decoder.
func (d *Decoder) DecodeSample(code uint8) int16 {
	var sample int16
	d.state, sample = Step(d.state, code)
	return sample
}

// DecodeBlock decodes every byte of src into two samples, high nibble first.
func (d *Decoder) DecodeBlock(src []byte) []int16 {
	out := make([]int16, len(src)*2)
	d.DecodeInto(out, src)
	return out
}

// DecodeInto decodes as many bytes of src as fit into dst and returns the
// number of samples written. dst needs two samples per source byte.
func (d *Decoder) DecodeInto(dst []int16, src []byte) int {
	n := min(len(src), len(dst)/2)
	s := d.state
	for i, b := range src[:n] {
		s, dst[2*i] = Step(s, b>>4)
		s, dst[2*i+1] = Step(s, b&0x0F)
	}
	d.state = s

	return n * 2
}

// AppendPCM16 decodes src and appends the samples to dst as little-endian
// 16-bit PCM, four bytes per source byte.
func (d *Decoder) AppendPCM16(dst []byte, src []byte) []byte {
	dst = grow(dst, len(src)*4)
	s := d.state
	var hi, lo int16
	for _, b := range src {
		s, hi = Step(s, b>>4)
		s, lo = Step(s, b&0x0F)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(hi))
		dst = binary.LittleEndian.AppendUint16(dst, uint16(lo))
	}
	d.state = s

	return dst
}

func grow(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	nb := make([]byte, len(b), len(b)+max(n, cap(b)))
	copy(nb, b)
	return nb
}
