// SPDX-License-Identifier: EPL-2.0

// Command recordingsd accepts IMA ADPCM WAV uploads from PBX recorders,
// stores them with a 16-bit PCM copy and serves both back.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/adpcmpbx/internal/recordings"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := loadConfig()

	store, err := recordings.NewStore(cfg.dir)
	if err != nil {
		slog.Error("opening store", "dir", cfg.dir, "error", err)
		os.Exit(1)
	}

	handler := recordings.NewHandler(store, recordings.Config{
		MaxUploadBytes: cfg.maxUploadBytes,
		SampleRate:     cfg.sampleRate,
		ChunkSize:      cfg.chunkSize,
		HeaderCheck:    cfg.headerCheck,
		LatestLimit:    cfg.latestLimit,
	})

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("shutdown", "error", err)
		}
	}()

	slog.Info("recordingsd starting",
		"addr", cfg.addr,
		"dir", store.Dir(),
		"sample_rate", cfg.sampleRate,
		"max_upload_bytes", cfg.maxUploadBytes,
		"header_check", cfg.headerCheck,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("recordingsd stopped")
}
