// Package metric provides Prometheus metrics for reefdb-go.
//
// Metrics implements the driver's Observer seam, so connection and query
// telemetry can be scraped without the driver depending on Prometheus.
package metric
