// SPDX-License-Identifier: EPL-2.0

// Package adpcmpbx converts IMA ADPCM recordings into 16-bit PCM WAV files.
//
// Recorders upload mono 4-bit IMA ADPCM wrapped in a 44-byte WAV header.
// This module decodes such uploads as they stream in and writes a standard
// 16-bit PCM WAV that any player understands.
//
// # Quick Start
//
// The simplest way is ConvertFile:
//
//	stats, err := adpcmpbx.ConvertFile(ctx, "rec.wav", "rec_pcm.wav")
//
// # Packages
//
//   - adpcm: the sample decoder (and a matching encoder)
//   - formats/wav: the streaming header rewrite and conversion, header
//     parsing, PCM WAV writing and probing
//   - internal/recordings: the upload and listing HTTP server used by
//     cmd/recordingsd
//
// # Streaming
//
// For uploads that arrive in pieces, use wav.Transform directly or wrap the
// destination with wav.NewConverter:
//
//	c := wav.NewConverter(out)
//	io.Copy(c, upload)
//	err := c.Close()
//
// Decoding is sequential: every sample depends on the one before it, so one
// upload is always handled by one Transform. Separate uploads are
// independent and can be converted concurrently.
//
// # Encoding
//
// EncodeFile turns a mono 16-bit PCM WAV into the recorder's ADPCM format,
// which is handy for producing test uploads.
package adpcmpbx
