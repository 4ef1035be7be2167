package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/atomic"
)

type counter struct {
	name string
	help string
	n    atomic.Uint64
}

var (
	loads     = &counter{name: "cv_load_total", help: "Resume data loads started"}
	loadFails = &counter{name: "cv_load_failed_total", help: "Resume data loads that failed"}
	notFound  = &counter{name: "cv_load_not_found_total", help: "Resume data loads answered with a non-success status"}
	updates   = &counter{name: "cv_update_total", help: "Resume replacements"}
	resets    = &counter{name: "cv_reset_total", help: "Resume resets"}
	snapshots = &counter{name: "cv_snapshot_total", help: "Resume snapshots saved"}
	imports   = &counter{name: "cv_import_total", help: "Resume files imported"}
	exports   = &counter{name: "cv_export_total", help: "Resume exports rendered"}

	// counters is the exposition order.
	counters = []*counter{loads, loadFails, notFound, updates, resets, snapshots, imports, exports}

	loadDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

func IncLoad()         { loads.n.Inc() }
func IncLoadFailed()   { loadFails.n.Inc() }
func IncLoadNotFound() { notFound.n.Inc() }
func IncUpdate()       { updates.n.Inc() }
func IncReset()        { resets.n.Inc() }
func IncSnapshot()     { snapshots.n.Inc() }
func IncImport()       { imports.n.Inc() }
func IncExport()       { exports.n.Inc() }

// ObserveLoadDurationMs records how long a fetch took. Negative values count as zero.
func ObserveLoadDurationMs(ms float64) {
	loadDuration.Observe(max(ms, 0))
}

// Handler serves the Prometheus text exposition.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		c.String(http.StatusOK, Render())
	}
}

// Render returns every metric in Prometheus text format.
func Render() string {
	var b strings.Builder
	for _, c := range counters {
		writeHeader(&b, c.name, c.help, "counter")
		fmt.Fprintf(&b, "%s %d\n", c.name, c.n.Load())
	}
	loadDuration.write(&b, "cv_load_duration_ms", "Resume data load duration in milliseconds")
	return b.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{buckets: buckets, counts: make([]uint64, len(buckets))}
}

// Observe counts value in the first bucket whose upper bound holds it. Values above every
// bound only show up in +Inf.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func (h *histogram) write(w io.Writer, name, help string) {
	snap := h.Snapshot()
	writeHeader(w, name, help, "histogram")
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'f', -1, 64), cumulative)
	}
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(w, "%s_sum %s\n", name, strconv.FormatFloat(snap.sum, 'f', -1, 64))
	fmt.Fprintf(w, "%s_count %d\n", name, snap.count)
}

func writeHeader(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}
