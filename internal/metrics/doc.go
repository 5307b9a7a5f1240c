// Package metrics implements dynamo.Metric observers over circuit frames.
//
// Metrics are stateful and single-goroutine; build a fresh set per run.
package metrics
