// SPDX-License-Identifier: EPL-2.0

// Package wav rewrites IMA ADPCM WAV uploads into 16-bit PCM WAV files and
// reads and writes canonical 44-byte WAV headers.
//
// # Streaming Transform
//
// Transform consumes an upload chunk by chunk. The first 44 bytes are the
// source header; they are replaced by a mono 16-bit PCM header declaring
// 16000 Hz (see WithSampleRate). Every byte after the header decodes into
// two samples, so N payload bytes become 4×N output bytes:
//
//	tr := wav.NewTransform()
//	for chunk := range chunks {
//	    out, err := tr.Push(chunk)
//	    if err != nil {
//	        return err
//	    }
//	    w.Write(out)
//	}
//	return tr.Finish() // ErrTruncatedHeader for short input
//
// Output is identical no matter how the input is split into chunks. The
// header may itself span several chunks; nothing is emitted until it is
// complete.
//
// The source header is not validated unless WithHeaderCheck is given.
//
// # Converting Streams
//
// Convert drives a Transform from an io.Reader, and Converter wraps one as
// an io.WriteCloser:
//
//	out, _ := os.Create("rec_pcm.wav")
//	stats, err := wav.Convert(ctx, out, upload, 4096)
//
// The RIFF and data sizes are streamed as 0xFFFFFFFF. When the destination
// is an io.WriteSeeker (an *os.File), they are patched to the real sizes once
// the input ends. See FinalizeSizes.
//
// # Writing WAV Files
//
// WriteWAV16 writes mono 16-bit PCM samples, WriteIMAADPCM wraps an ADPCM
// payload the way the recorder does:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	wav.WriteWAV16(file, 8000, samples)
//
// # Probing
//
// Probe uses github.com/go-audio/wav to read back a PCM file and report
// its format and duration.
//
// # Error Handling
//
//   - ErrTruncatedHeader: the stream ended before 44 header bytes arrived
//   - ErrNotWavFile: RIFF/WAVE magic missing (header check, Probe)
//   - ErrUnsupportedWavLayout, ErrUnsupportedWavChunks: non-canonical layout
//   - ErrOnlyPCM16bitSupported: Probe on anything but 16-bit PCM
//   - ErrTransformFinished: Push after Finish
//   - ErrInvalidSampleRate: a rate the header fields cannot carry
package wav
