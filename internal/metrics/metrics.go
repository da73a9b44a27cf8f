// Package metrics records per-run counters in a dedicated Prometheus registry
// and exports them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/labeltypes"
)

const namespace = "labelsync"

// Stage names used for the stage duration gauge.
const (
	StageBootstrap = "bootstrap"
	StageUpload    = "upload"
	StageLabel     = "label"
	StageWrite     = "write"
)

// Recorder holds the metrics of one run.
type Recorder struct {
	registry *prometheus.Registry

	scanned       prometheus.Gauge
	uploaded      prometheus.Counter
	skipped       prometheus.Counter
	labeled       prometheus.Counter
	bytesUploaded prometheus.Counter
	stageDuration *prometheus.GaugeVec
	lastSuccess   prometheus.Gauge
	lastFailure   *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "images_scanned",
			Help:      "Number of entries found in the image directory.",
		}),
		uploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_uploaded_total",
			Help:      "Number of images put into the bucket.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_skipped_total",
			Help:      "Number of images already present in the bucket.",
		}),
		labeled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_labeled_total",
			Help:      "Number of images labeled by the recognition service.",
		}),
		bytesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Total size of uploaded images.",
		}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
		}, []string{"stage"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		lastFailure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_failure_timestamp_seconds",
			Help:      "Unix time of the last failed run, by error kind.",
		}, []string{"kind"}),
	}

	r.registry.MustRegister(
		r.scanned,
		r.uploaded,
		r.skipped,
		r.labeled,
		r.bytesUploaded,
		r.stageDuration,
		r.lastSuccess,
		r.lastFailure,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveScan records the number of scanned entries.
func (r *Recorder) ObserveScan(n int) {
	r.scanned.Set(float64(n))
}

// ObserveSync records the upload stage outcome.
func (r *Recorder) ObserveSync(result *labeltypes.SyncResult) {
	r.uploaded.Add(float64(len(result.Uploaded)))
	r.skipped.Add(float64(len(result.Skipped)))
	r.bytesUploaded.Add(float64(result.BytesUploaded))
	r.stageDuration.WithLabelValues(StageUpload).Set(result.Duration.Seconds())
}

// ObserveLabels records how many images were labeled.
func (r *Recorder) ObserveLabels(n int) {
	r.labeled.Add(float64(n))
}

// ObserveStage records the duration of a stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// MarkSuccess stamps the success gauge.
func (r *Recorder) MarkSuccess(at time.Time) {
	r.lastSuccess.Set(float64(at.Unix()))
}

// MarkFailure stamps the failure gauge for kind.
func (r *Recorder) MarkFailure(kind string, at time.Time) {
	r.lastFailure.WithLabelValues(kind).Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics to filename atomically.
func (r *Recorder) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", filename, err)
	}
	return nil
}
