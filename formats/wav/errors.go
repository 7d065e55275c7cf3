// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrUnsupportedWavChunks  = errors.New("unsupported WAV chunks")

	// ErrTruncatedHeader is returned when a stream ends before a full
	// 44-byte header arrived.
	ErrTruncatedHeader = errors.New("truncated WAV header")
	// ErrTransformFinished is returned when data is pushed after Finish.
	ErrTransformFinished = errors.New("transform already finished")
	// ErrDataTooLarge is returned when the PCM payload no longer fits the
	// 32-bit RIFF size fields.
	ErrDataTooLarge = errors.New("PCM data too large for WAV")
	// ErrInvalidSampleRate is returned for rates a WAV header cannot carry.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)
