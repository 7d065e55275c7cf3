// SPDX-License-Identifier: EPL-2.0

package adpcm

// Encoder quantizes 16-bit PCM into 4-bit IMA ADPCM codes using the same
// tables as Decoder, so that a Decoder fed its output tracks the encoder's
// predictor exactly.
type Encoder struct {
	state State
	// pending holds a high nibble waiting for its low partner.
	pending    uint8
	hasPending bool
}

// NewEncoder returns an encoder in the start-of-stream state.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// State returns a snapshot of the current encoder state.
func (e *Encoder) State() State { return e.state }

// EncodeSample returns the 4-bit code that best approximates sample and
// advances the encoder.
func (e *Encoder) EncodeSample(sample int16) uint8 {
	step := stepTable[clampIndex(int(e.state.StepIndex))]

	diff := int32(sample) - int32(e.state.Predictor)
	var code uint8
	if diff < 0 {
		code = 8
		diff = -diff
	}

	if diff >= step {
		code |= 4
		diff -= step
	}
	if diff >= step>>1 {
		code |= 2
		diff -= step >> 1
	}
	if diff >= step>>2 {
		code |= 1
	}

	// Advance through the decoder so both sides agree bit for bit.
	e.state, _ = Step(e.state, code)

	return code
}

// Encode packs samples two per byte, high nibble first, and appends the
// result to dst. An odd trailing sample is kept until the next call or Flush.
func (e *Encoder) Encode(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		code := e.EncodeSample(s)
		if !e.hasPending {
			e.pending = code
			e.hasPending = true
			continue
		}
		dst = append(dst, e.pending<<4|code)
		e.hasPending = false
	}

	return dst
}

// Flush appends a pending odd sample, padded with a zero low nibble.
func (e *Encoder) Flush(dst []byte) []byte {
	if !e.hasPending {
		return dst
	}
	e.hasPending = false
	return append(dst, e.pending<<4)
}
