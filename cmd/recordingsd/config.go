// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"
	"strconv"

	"github.com/ik5/adpcmpbx/formats/wav"
	"github.com/ik5/adpcmpbx/internal/recordings"
)

type config struct {
	addr           string
	dir            string
	maxUploadBytes int64
	sampleRate     int
	chunkSize      int
	headerCheck    bool
	latestLimit    int
}

func loadConfig() config {
	return config{
		addr:           envStr("RECORDINGS_ADDR", ":8001"),
		dir:            envStr("RECORDINGS_DIR", "uploads"),
		maxUploadBytes: int64(envInt("RECORDINGS_MAX_UPLOAD_BYTES", recordings.DefaultMaxUploadBytes)),
		sampleRate:     envInt("RECORDINGS_SAMPLE_RATE", wav.DefaultSampleRate),
		chunkSize:      envInt("RECORDINGS_CHUNK_SIZE", wav.DefaultChunkSize),
		headerCheck:    envBool("RECORDINGS_HEADER_CHECK", false),
		latestLimit:    envInt("RECORDINGS_LATEST_LIMIT", recordings.DefaultLatestLimit),
	}
}

func envStr(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
