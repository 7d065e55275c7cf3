// SPDX-License-Identifier: EPL-2.0

// Package adpcm implements IMA ADPCM sample coding for mono 4-bit streams.
//
// Each input byte carries two codes, high nibble first. Decoding keeps a
// predictor and a step index that persist from one code to the next, so a
// stream must be decoded in order by a single Decoder:
//
//	dec := adpcm.NewDecoder()
//	samples := dec.DecodeBlock(payload) // len(payload)*2 samples
//
// The transition itself is available as the pure function Step:
//
//	var s adpcm.State
//	s, sample := adpcm.Step(s, 0x7)
//
// Step and index tables are fixed; StepSize and IndexAdjust expose them
// read-only.
//
// # Encoding
//
// Encoder produces codes that a Decoder reconstructs exactly as the encoder
// predicted them. It is mostly useful to build test streams:
//
//	enc := adpcm.NewEncoder()
//	payload := enc.Flush(enc.Encode(nil, pcm))
package adpcm
