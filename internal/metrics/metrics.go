// Package metrics exposes Prometheus collectors for the stockroom service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsAddedTotal      prometheus.Counter
	itemsRemovedTotal    prometheus.Counter
	quantityUpdatesTotal prometheus.Counter
	snapshotOpsTotal     *prometheus.CounterVec
	snapshotErrorsTotal  prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		itemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_items_added_total",
			Help: "Total number of items added to the repository.",
		})
		itemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_items_removed_total",
			Help: "Total number of items removed from the repository.",
		})
		quantityUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_quantity_updates_total",
			Help: "Total number of in-place quantity updates.",
		})
		snapshotOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_snapshot_ops_total",
			Help: "Total number of successful snapshot operations, labeled by op.",
		}, []string{"op"})
		snapshotErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_snapshot_errors_total",
			Help: "Total number of failed snapshot saves and loads.",
		})
	})
}

// RecordItemAdded counts a successful repository insertion.
func RecordItemAdded() {
	if itemsAddedTotal != nil {
		itemsAddedTotal.Inc()
	}
}

// RecordItemRemoved counts a successful repository removal.
func RecordItemRemoved() {
	if itemsRemovedTotal != nil {
		itemsRemovedTotal.Inc()
	}
}

// RecordQuantityUpdate counts a successful quantity change.
func RecordQuantityUpdate() {
	if quantityUpdatesTotal != nil {
		quantityUpdatesTotal.Inc()
	}
}

// RecordSnapshotSave counts a successful snapshot save.
func RecordSnapshotSave() {
	if snapshotOpsTotal != nil {
		snapshotOpsTotal.WithLabelValues("save").Inc()
	}
}

// RecordSnapshotLoad counts a successful snapshot restore.
func RecordSnapshotLoad() {
	if snapshotOpsTotal != nil {
		snapshotOpsTotal.WithLabelValues("load").Inc()
	}
}

// RecordSnapshotError counts a failed snapshot save or load.
func RecordSnapshotError() {
	if snapshotErrorsTotal != nil {
		snapshotErrorsTotal.Inc()
	}
}
