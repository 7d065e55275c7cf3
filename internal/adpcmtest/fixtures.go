// SPDX-License-Identifier: EPL-2.0

// Package adpcmtest builds IMA ADPCM WAV fixtures for tests.
package adpcmtest

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"math/rand/v2"

	"github.com/ik5/adpcmpbx/adpcm"
)

// RandomPayload returns n pseudo-random ADPCM bytes for the given seed.
func RandomPayload(seed uint64, n int) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.IntN(256))
	}
	return b
}

// SinePayload encodes samples of a sine wave at freq Hz and rate Hz.
func SinePayload(samples int, freq, rate float64) []byte {
	pcm := make([]int16, samples)
	for i := range pcm {
		pcm[i] = int16(12000 * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}

	enc := adpcm.NewEncoder()
	return enc.Flush(enc.Encode(nil, pcm))
}

// WAV wraps payload in a 44-byte IMA ADPCM header as written by the
// recorder firmware.
func WAV(payload []byte) []byte {
	buf := new(bytes.Buffer)
	dataSize := uint32(len(payload))

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(0x11)) // IMA ADPCM
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(16000))
	binary.Write(buf, binary.LittleEndian, uint32(8000))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(4))

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	buf.Write(payload)

	return buf.Bytes()
}

// Split cuts b into chunks with sizes drawn from [1, maxChunk] for seed.
func Split(b []byte, seed uint64, maxChunk int) [][]byte {
	rng := rand.New(rand.NewPCG(seed, 1))
	var chunks [][]byte
	for len(b) > 0 {
		n := min(1+rng.IntN(maxChunk), len(b))
		chunks = append(chunks, b[:n])
		b = b[n:]
	}
	return chunks
}

// ChunkReader returns one chunk per Read call, the way a network body
// delivers data in uneven pieces.
type ChunkReader struct {
	chunks [][]byte
}

// NewChunkReader returns a reader over chunks.
func NewChunkReader(chunks [][]byte) *ChunkReader {
	return &ChunkReader{chunks: append([][]byte(nil), chunks...)}
}

func (r *ChunkReader) Read(p []byte) (int, error) {
	for len(r.chunks) > 0 && len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]

	return n, nil
}

// ErrReader fails every Read with err after delivering prefix.
type ErrReader struct {
	Prefix []byte
	Err    error
}

func (r *ErrReader) Read(p []byte) (int, error) {
	if len(r.Prefix) > 0 {
		n := copy(p, r.Prefix)
		r.Prefix = r.Prefix[n:]
		return n, nil
	}
	return 0, r.Err
}
