// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.  samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if err := checkSampleRate(sampleRate); err != nil {
		return err
	}

	header := PCM16Header(sampleRate, uint32(len(samples)*2)).Marshal()

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	// Write 8K samples at a time
	const chunkSize = 8192
	buf := make([]byte, 0, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))

		buf = buf[:0]
		for _, s := range samples[i:end] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteIMAADPCM writes payload as a mono 4-bit IMA ADPCM WAV at sampleRate,
// laid out in the same 44-byte shape the recorder firmware produces.
func WriteIMAADPCM(w io.Writer, sampleRate int, payload []byte) error {
	if err := checkSampleRate(sampleRate); err != nil {
		return err
	}

	h := Header{
		RIFFSize:      HeaderSize - 8 + uint32(len(payload)),
		AudioFormat:   FormatIMAADPCM,
		Channels:      1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) / 2,
		BlockAlign:    1,
		BitsPerSample: 4,
		DataSize:      uint32(len(payload)),
	}
	header := h.Marshal()

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
