// SPDX-License-Identifier: EPL-2.0

package recordings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ik5/adpcmpbx/formats/wav"
)

const (
	// DefaultMaxUploadBytes limits the request body of an upload.
	DefaultMaxUploadBytes = 16 << 20

	// DefaultLatestLimit is the number of recordings /latest returns when
	// the caller omits ?limit=.
	DefaultLatestLimit = 10

	audioField = "audio"
)

// Config tunes a Handler. Zero fields take their defaults.
type Config struct {
	MaxUploadBytes int64
	SampleRate     int
	ChunkSize      int
	HeaderCheck    bool
	LatestLimit    int
	Logger         *slog.Logger
	// Now stamps new uploads. Defaults to time.Now.
	Now func() time.Time
}

// Handler routes the recording endpoints.
type Handler struct {
	store *Store
	cfg   Config
	log   *slog.Logger
	mux   *http.ServeMux
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	OriginalFile string `json:"originalFile"`
	PCMFile      string `json:"pcmFile"`
	PCMBytes     int64  `json:"pcmBytes"`
}

// NewHandler returns a Handler serving store.
func NewHandler(store *Store, cfg Config) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = wav.DefaultSampleRate
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = wav.DefaultChunkSize
	}
	if cfg.LatestLimit <= 0 {
		cfg.LatestLimit = DefaultLatestLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{
		store: store,
		cfg:   cfg,
		log:   log,
		mux:   http.NewServeMux(),
	}
	h.Register(h.mux)

	return h
}

// Register wires all endpoints to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", h.handleUpload)
	mux.HandleFunc("GET /recordings", h.handleRecordings)
	mux.HandleFunc("GET /latest", h.handleLatest)
	mux.HandleFunc("GET /audio/{name}", h.handleFile)
	mux.HandleFunc("GET /uploads/{name}", h.handleFile)
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	log := h.log.With("upload_id", id)

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	part, err := audioPart(r)
	if err != nil {
		h.fail(w, log, err)
		return
	}
	defer part.Close()

	if !isWAV(part.FileName()) {
		h.fail(w, log, ErrNotWAVUpload)
		return
	}

	u, err := h.store.Create(part.FileName(), h.cfg.Now())
	if err != nil {
		h.fail(w, log, err)
		return
	}

	conversionsActive.Inc()
	start := time.Now()

	stats, err := wav.Convert(r.Context(), u.PCM, io.TeeReader(part, u.Original), h.cfg.ChunkSize, h.transformOptions()...)

	conversionsActive.Dec()
	conversionDuration.Observe(time.Since(start).Seconds())
	decodedBytes.Add(float64(stats.PayloadBytes))

	if err == nil {
		err = u.Close()
	}
	if err != nil {
		if rerr := h.store.Remove(u); rerr != nil {
			log.Warn("removing failed upload", "file", u.Name, "error", rerr)
		}
		h.fail(w, log, err)
		return
	}

	uploadsTotal.WithLabelValues(resultOK).Inc()
	log.Info("upload converted",
		"file", u.Name,
		"pcm_file", u.PCMName,
		"input_bytes", stats.InputBytes,
		"pcm_bytes", stats.OutputBytes,
		"elapsed", time.Since(start),
	)

	writeJSON(w, http.StatusOK, UploadResponse{
		ID:           id,
		Message:      "File uploaded and converted",
		OriginalFile: u.Name,
		PCMFile:      u.PCMName,
		PCMBytes:     stats.OutputBytes,
	})
}

func (h *Handler) transformOptions() []wav.TransformOption {
	opts := []wav.TransformOption{wav.WithSampleRate(h.cfg.SampleRate)}
	if h.cfg.HeaderCheck {
		opts = append(opts, wav.WithHeaderCheck())
	}
	return opts
}

// audioPart advances the multipart body to the audio field.
func audioPart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAudioPart, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoAudioPart
		}
		if err != nil {
			return nil, fmt.Errorf("reading multipart body: %w", err)
		}

		if part.FormName() == audioField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

// fail logs err and answers with the matching status.
func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, err error) {
	status, result := http.StatusInternalServerError, resultError

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status, result = http.StatusRequestEntityTooLarge, resultTooLarge
	case errors.Is(err, ErrNoAudioPart),
		errors.Is(err, ErrNotWAVUpload),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, wav.ErrTruncatedHeader),
		errors.Is(err, wav.ErrNotWavFile),
		errors.Is(err, wav.ErrUnsupportedWavLayout),
		errors.Is(err, wav.ErrUnsupportedWavChunks):
		status, result = http.StatusBadRequest, resultBadRequest
	}

	uploadsTotal.WithLabelValues(result).Inc()

	if status == http.StatusInternalServerError {
		log.Error("upload failed", "error", err)
		writeError(w, status, "conversion failed")
		return
	}

	log.Warn("upload rejected", "status", status, "error", err)
	writeError(w, status, err.Error())
}

func (h *Handler) handleRecordings(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List()
	if err != nil {
		h.log.Error("listing recordings", "error", err)
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", h.cfg.LatestLimit)
	if limit <= 0 {
		limit = h.cfg.LatestLimit
	}

	recs, err := h.store.Latest(limit)
	if err != nil {
		h.log.Error("listing recordings", "error", err)
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	f, err := h.store.Open(name)
	switch {
	case errors.Is(err, ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, fs.ErrNotExist):
		writeError(w, http.StatusNotFound, "file not found")
		return
	case err != nil:
		h.log.Error("opening recording", "file", name, "error", err)
		writeError(w, http.StatusInternalServerError, "open failed")
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "open failed")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeContent(w, r, name, st.ModTime(), f)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
