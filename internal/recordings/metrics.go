// SPDX-License-Identifier: EPL-2.0

package recordings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recordings_uploads_total",
		Help: "Uploads handled by result",
	}, []string{"result"})

	conversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recordings_conversion_duration_seconds",
		Help:    "Time spent receiving and converting one upload",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	decodedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recordings_decoded_payload_bytes_total",
		Help: "ADPCM payload bytes decoded into PCM",
	})

	conversionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recordings_conversions_active",
		Help: "Uploads currently being converted",
	})
)

// Upload results used as the result label.
const (
	resultOK         = "ok"
	resultBadRequest = "bad_request"
	resultTooLarge   = "too_large"
	resultError      = "error"
)
