// SPDX-License-Identifier: EPL-2.0

package adpcmpbx

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ik5/adpcmpbx/adpcm"
	"github.com/ik5/adpcmpbx/formats/wav"
)

// ConvertFile converts the IMA ADPCM WAV at inPath into a 16-bit PCM WAV at
// outPath. The output file gets its final RIFF and data sizes. On any error
// the partial output is removed.
//
// Example:
//
//	stats, err := adpcmpbx.ConvertFile(ctx, "rec.wav", "rec_pcm.wav")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(stats.PayloadBytes, "ADPCM bytes decoded")
func ConvertFile(ctx context.Context, inPath, outPath string, opts ...wav.TransformOption) (wav.Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return wav.Stats{}, fmt.Errorf("%w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return wav.Stats{}, fmt.Errorf("%w", err)
	}

	stats, err := wav.Convert(ctx, out, in, wav.DefaultChunkSize, opts...)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return stats, errors.Join(err, os.Remove(outPath))
	}

	return stats, nil
}

// EncodeFile reads the 16-bit PCM WAV at inPath and writes it as a mono IMA
// ADPCM WAV at outPath, the format the recorder uploads. Multi-channel input
// is rejected.
func EncodeFile(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	h, err := wav.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if h.AudioFormat != wav.FormatPCM || h.BitsPerSample != 16 || h.Channels != 1 {
		return wav.ErrOnlyPCM16bitSupported
	}

	body := data[wav.HeaderSize:]
	if h.DataSize != wav.UnknownSize && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	samples := make([]int16, len(body)/2)
	for i := range samples {
		samples[i] = int16(uint16(body[2*i]) | uint16(body[2*i+1])<<8)
	}

	enc := adpcm.NewEncoder()
	payload := enc.Flush(enc.Encode(nil, samples))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	err = wav.WriteIMAADPCM(out, int(h.SampleRate), payload)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Join(err, os.Remove(outPath))
	}

	return nil
}
