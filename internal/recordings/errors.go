// SPDX-License-Identifier: EPL-2.0

package recordings

import "errors"

var (
	// ErrInvalidName is returned for file names that are empty after
	// sanitizing or that would escape the store directory.
	ErrInvalidName = errors.New("invalid recording name")
	// ErrNotWAVUpload is returned for uploads without a .wav extension.
	ErrNotWAVUpload = errors.New("only .wav files are allowed")
	// ErrNoAudioPart is returned when the multipart body has no audio field.
	ErrNoAudioPart = errors.New("no audio file provided")
)
