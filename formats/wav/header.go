// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// HeaderSize is the size of a canonical RIFF/WAVE header with a single
	// fmt chunk followed by the data chunk.
	HeaderSize = 44

	// UnknownSize marks RIFF and data sizes that were not known when the
	// header was written.
	UnknownSize uint32 = 0xFFFFFFFF

	FormatPCM      uint16 = 0x0001
	FormatIMAADPCM uint16 = 0x0011

	// MaxSampleRate is the highest rate whose 16-bit mono byte rate still
	// fits the 32-bit header field.
	MaxSampleRate = math.MaxUint32 / 2
)

func checkSampleRate(rate int) error {
	if rate <= 0 || rate > MaxSampleRate {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	return nil
}

// Header holds the fields of a canonical 44-byte WAV header.
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// PCM16Header describes a mono 16-bit linear PCM stream with dataSize bytes
// of samples. Passing UnknownSize marks both sizes as unknown.
func PCM16Header(sampleRate int, dataSize uint32) Header {
	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)

	riffSize := UnknownSize
	if dataSize != UnknownSize {
		riffSize = HeaderSize - 8 + dataSize
	}

	return Header{
		RIFFSize:      riffSize,
		AudioFormat:   FormatPCM,
		Channels:      channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * blockAlign,
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		DataSize:      dataSize,
	}
}

// Marshal encodes h in canonical layout.
func (h Header) Marshal() [HeaderSize]byte {
	var b [HeaderSize]byte

	// RIFF header (12 bytes)
	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], h.RIFFSize)
	copy(b[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16)
	binary.LittleEndian.PutUint16(b[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(b[22:24], h.Channels)
	binary.LittleEndian.PutUint32(b[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(b[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[34:36], h.BitsPerSample)

	// data chunk header (8 bytes)
	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], h.DataSize)

	return b
}

// ParseHeader decodes a canonical 44-byte header. Only the layout is
// checked; the field values are returned as found.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedHeader, len(b), HeaderSize)
	}

	if !bytes.HasPrefix(b[:4], []byte("RIFF")) || !bytes.HasPrefix(b[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}

	// fmt chunk at 12.., assuming canonical layout
	if !bytes.HasPrefix(b[12:16], []byte("fmt ")) {
		return Header{}, ErrUnsupportedWavLayout
	}

	if !bytes.HasPrefix(b[36:40], []byte("data")) {
		return Header{}, ErrUnsupportedWavChunks
	}

	return Header{
		RIFFSize:      binary.LittleEndian.Uint32(b[4:8]),
		AudioFormat:   binary.LittleEndian.Uint16(b[20:22]),
		Channels:      binary.LittleEndian.Uint16(b[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(b[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(b[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(b[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(b[34:36]),
		DataSize:      binary.LittleEndian.Uint32(b[40:44]),
	}, nil
}
