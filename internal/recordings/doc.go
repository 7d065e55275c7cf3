// SPDX-License-Identifier: EPL-2.0

// Package recordings serves recorder uploads over HTTP.
//
// Each upload is a WAV file carrying IMA ADPCM. The original bytes are kept
// on disk next to a 16-bit PCM copy produced by [wav.Convert] while the
// request body streams in. The handler also lists stored recordings and
// serves both files with byte range support.
//
//	store, err := recordings.NewStore("uploads")
//	if err != nil {
//	    return err
//	}
//	h := recordings.NewHandler(store, recordings.Config{})
//	http.ListenAndServe(":8001", h)
package recordings
