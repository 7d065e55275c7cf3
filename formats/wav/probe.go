// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Info describes a PCM WAV file found by Probe.
type Info struct {
	Format   *goaudio.Format
	BitDepth int
	// DataSize is the number of sample bytes actually present, which may be
	// less than the header declares for files that were never finalized.
	DataSize int64
	Duration time.Duration
}

// Probe reads the header of a 16-bit PCM WAV file and measures its payload.
func Probe(r io.ReadSeeker) (Info, error) {
	d := gowav.NewDecoder(r)
	if err := d.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if d.WavAudioFormat != FormatPCM || d.BitDepth != 16 {
		return Info{}, ErrOnlyPCM16bitSupported
	}

	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Info{}, fmt.Errorf("%w", err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Info{}, fmt.Errorf("%w", err)
	}

	size := min(int64(d.PCMSize), end-start)

	format := d.Format()
	info := Info{
		Format:   format,
		BitDepth: int(d.BitDepth),
		DataSize: size,
	}

	bytesPerSecond := int64(format.SampleRate) * int64(format.NumChannels) * 2
	if bytesPerSecond > 0 {
		info.Duration = time.Duration(size * int64(time.Second) / bytesPerSecond)
	}

	return info, nil
}
